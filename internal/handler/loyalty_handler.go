package handler

import (
	"net/http"

	"github.com/glowslot/booking-platform/internal/dto"
	"github.com/glowslot/booking-platform/internal/service"
	"github.com/labstack/echo/v4"
)

type LoyaltyHandler struct {
	loyaltySvc service.LoyaltyService
}

func NewLoyaltyHandler(loyaltySvc service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltySvc: loyaltySvc}
}

func (h *LoyaltyHandler) RegisterRoutes(e *echo.Echo) {
	customers := e.Group("/api/v1/customers")
	customers.GET("/:id/loyalty/balance", h.GetBalance)
	customers.GET("/:id/loyalty/history", h.GetHistory)
}

func (h *LoyaltyHandler) GetBalance(c echo.Context) error {
	customerID := c.Param("id")
	points, err := h.loyaltySvc.GetAvailablePoints(c.Request().Context(), customerID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.LoyaltyBalanceResponse{
		CustomerID:      customerID,
		AvailablePoints: points,
	})
}

func (h *LoyaltyHandler) GetHistory(c echo.Context) error {
	entries, err := h.loyaltySvc.GetHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
