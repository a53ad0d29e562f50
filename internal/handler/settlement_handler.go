package handler

import (
	"net/http"

	"github.com/glowslot/booking-platform/internal/dto"
	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/service"
	"github.com/labstack/echo/v4"
)

type SettlementHandler struct {
	settlementSvc service.SettlementService
}

func NewSettlementHandler(settlementSvc service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementSvc: settlementSvc}
}

func (h *SettlementHandler) RegisterRoutes(e *echo.Echo) {
	vendors := e.Group("/api/v1/vendors")
	vendors.GET("/:id/earnings", h.GetVendorEarnings)
	vendors.GET("/:id/transactions", h.ListVendorTransactions)
	vendors.POST("/:id/payouts", h.RequestPayout)

	e.GET("/api/v1/platform/revenue", h.GetPlatformRevenue)
}

func (h *SettlementHandler) GetVendorEarnings(c echo.Context) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return err
	}
	summary, err := h.settlementSvc.VendorEarnings(c.Request().Context(), c.Param("id"), start, end)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *SettlementHandler) ListVendorTransactions(c echo.Context) error {
	var types []models.TransactionType
	for _, t := range c.QueryParams()["type"] {
		types = append(types, models.TransactionType(t))
	}
	txns, err := h.settlementSvc.VendorTransactions(c.Request().Context(), c.Param("id"), types)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, txns)
}

func (h *SettlementHandler) RequestPayout(c echo.Context) error {
	var req dto.PayoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	txn, err := h.settlementSvc.ProcessPayout(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, txn)
}

func (h *SettlementHandler) GetPlatformRevenue(c echo.Context) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return err
	}
	summary, err := h.settlementSvc.PlatformRevenue(c.Request().Context(), start, end)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
