package handler

import (
	"net/http"

	"github.com/glowslot/booking-platform/internal/dto"
	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/service"
	"github.com/labstack/echo/v4"
)

type PromoHandler struct {
	promoSvc service.PromoService
}

func NewPromoHandler(promoSvc service.PromoService) *PromoHandler {
	return &PromoHandler{promoSvc: promoSvc}
}

func (h *PromoHandler) RegisterRoutes(e *echo.Echo) {
	promos := e.Group("/api/v1/promo-codes")
	promos.POST("", h.CreatePromo)
	promos.POST("/validate", h.ValidatePromo)
	promos.GET("/active", h.ListActive)
	promos.DELETE("/:id", h.DeactivatePromo)
}

func (h *PromoHandler) ValidatePromo(c echo.Context) error {
	var req dto.ValidatePromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" || req.CustomerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code and customer_id are required")
	}

	result, err := h.promoSvc.Validate(c.Request().Context(), req.Code, req.CustomerID,
		req.OrderValue, req.ServiceIDs, req.VendorID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PromoHandler) CreatePromo(c echo.Context) error {
	var req dto.CreatePromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	switch models.PromoCodeType(req.Type) {
	case models.PromoPercentage, models.PromoFixed, models.PromoFirstTime:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "type must be percentage, fixed or first_time")
	}

	promo := &models.PromoCode{
		Code:               req.Code,
		Type:               models.PromoCodeType(req.Type),
		Value:              req.Value,
		MinOrderValue:      req.MinOrderValue,
		MaxDiscount:        req.MaxDiscount,
		UsageLimit:         req.UsageLimit,
		UserLimit:          req.UserLimit,
		IsActive:           true,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ApplicableServices: req.ApplicableServices,
		ApplicableVendors:  req.ApplicableVendors,
		CreatedBy:          req.CreatedBy,
	}
	if err := h.promoSvc.Create(c.Request().Context(), promo); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, promo)
}

func (h *PromoHandler) ListActive(c echo.Context) error {
	promos, err := h.promoSvc.GetActive(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, promos)
}

func (h *PromoHandler) DeactivatePromo(c echo.Context) error {
	if err := h.promoSvc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
