package handler

import (
	"errors"
	"net/http"

	"github.com/glowslot/booking-platform/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service sentinel errors onto HTTP status codes. Unknown
// errors stay 500 so storage faults are never mistaken for client mistakes.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrDealNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadySettled),
		errors.Is(err, service.ErrPromoExhausted),
		errors.Is(err, service.ErrPromoUserLimit):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, service.ErrNotRefundable),
		errors.Is(err, service.ErrMinRedemption),
		errors.Is(err, service.ErrInsufficientPoints),
		errors.Is(err, service.ErrInvalidPayoutAmount):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDealWindowInvalid),
		errors.Is(err, service.ErrDealPricingInvalid),
		errors.Is(err, service.ErrDealSlotsInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
