package handler

import (
	"net/http"
	"strconv"

	"github.com/glowslot/booking-platform/internal/dto"
	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/service"
	"github.com/labstack/echo/v4"
)

type FlashDealHandler struct {
	dealSvc service.FlashDealService
}

func NewFlashDealHandler(dealSvc service.FlashDealService) *FlashDealHandler {
	return &FlashDealHandler{dealSvc: dealSvc}
}

func (h *FlashDealHandler) RegisterRoutes(e *echo.Echo) {
	deals := e.Group("/api/v1/flash-deals")
	deals.POST("", h.CreateDeal)
	deals.GET("/active", h.ListActive)
	deals.GET("/upcoming", h.ListUpcoming)
	deals.POST("/:id/book", h.BookDeal)
	deals.POST("/:id/toggle", h.ToggleDeal)

	e.POST("/api/v1/flash-deal-bookings/:id/redeem", h.RedeemDeal)
	e.GET("/api/v1/customers/:id/flash-deal-bookings", h.ListCustomerBookings)
}

func (h *FlashDealHandler) CreateDeal(c echo.Context) error {
	var req dto.CreateFlashDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.VendorID == "" || req.ServiceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title, vendor_id and service_id are required")
	}

	deal := &models.FlashDeal{
		Title:           req.Title,
		Description:     req.Description,
		VendorID:        req.VendorID,
		ServiceID:       req.ServiceID,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		TotalSlots:      req.TotalSlots,
	}
	if err := h.dealSvc.Create(c.Request().Context(), deal); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToFlashDealResponse(deal))
}

func (h *FlashDealHandler) BookDeal(c echo.Context) error {
	var req dto.BookFlashDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	result, err := h.dealSvc.Book(c.Request().Context(), c.Param("id"), req.CustomerID)
	if err != nil {
		return toHTTPError(err)
	}
	if !result.Success {
		return c.JSON(http.StatusUnprocessableEntity, result)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *FlashDealHandler) RedeemDeal(c echo.Context) error {
	var req dto.RedeemFlashDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.VendorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "vendor_id is required")
	}

	result, err := h.dealSvc.Redeem(c.Request().Context(), c.Param("id"), req.VendorID)
	if err != nil {
		return toHTTPError(err)
	}
	if !result.Success {
		return c.JSON(http.StatusUnprocessableEntity, result)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *FlashDealHandler) ListActive(c echo.Context) error {
	deals, err := h.dealSvc.GetActiveDeals(c.Request().Context(), c.QueryParam("vendor_id"))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.FlashDealResponse, len(deals))
	for i := range deals {
		resp[i] = dto.ToFlashDealResponse(&deals[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FlashDealHandler) ListUpcoming(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	deals, err := h.dealSvc.GetUpcomingDeals(c.Request().Context(), c.QueryParam("vendor_id"), limit)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.FlashDealResponse, len(deals))
	for i := range deals {
		resp[i] = dto.ToFlashDealResponse(&deals[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FlashDealHandler) ListCustomerBookings(c echo.Context) error {
	bookings, err := h.dealSvc.GetCustomerBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *FlashDealHandler) ToggleDeal(c echo.Context) error {
	active := c.QueryParam("active") != "false"
	if err := h.dealSvc.ToggleDeal(c.Request().Context(), c.Param("id"), active); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
