package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/glowslot/booking-platform/internal/dto"
	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	bookingSvc      service.BookingService
	availabilitySvc service.AvailabilityService
}

func NewBookingHandler(bookingSvc service.BookingService, availabilitySvc service.AvailabilityService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, availabilitySvc: availabilitySvc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/vendors/:id/availability", h.GetAvailability)
	e.GET("/api/v1/vendors/:id/bookings", h.ListVendorBookings)
	e.GET("/api/v1/vendors/:id/analytics", h.GetVendorAnalytics)

	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/payment", h.ProcessPayment)
	bookings.POST("/:id/cancel", h.CancelBooking)
	bookings.POST("/:id/complete", h.CompleteBooking)
	bookings.POST("/:id/no-show", h.MarkNoShow)

	e.GET("/api/v1/customers/:id/bookings", h.ListCustomerBookings)
}

func (h *BookingHandler) GetAvailability(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	}

	duration := 30
	if d := c.QueryParam("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil || duration <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid duration")
		}
	}

	availability, err := h.availabilitySvc.GetAvailability(c.Request().Context(), c.Param("id"), date, duration)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, availability)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == "" || req.VendorID == "" || req.ServiceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id, vendor_id and service_id are required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	}
	if req.TimeSlot == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "time_slot is required")
	}

	booking, err := h.bookingSvc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		CustomerID:         req.CustomerID,
		VendorID:           req.VendorID,
		ServiceID:          req.ServiceID,
		AddOnServiceIDs:    req.AddOnServiceIDs,
		Date:               date,
		TimeSlot:           req.TimeSlot,
		PromoCode:          req.PromoCode,
		LoyaltyPointsToUse: req.LoyaltyPointsToUse,
		Notes:              req.Notes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ProcessPayment(c echo.Context) error {
	var req dto.ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PaymentMethod == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "payment_method is required")
	}

	booking, err := h.bookingSvc.ProcessPayment(c.Request().Context(), service.PaymentInput{
		BookingID:     c.Param("id"),
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	var req dto.CancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CancelledBy != "customer" && req.CancelledBy != "vendor" {
		return echo.NewHTTPError(http.StatusBadRequest, "cancelled_by must be customer or vendor")
	}

	booking, err := h.bookingSvc.CancelBooking(c.Request().Context(), c.Param("id"), req.CancelledBy, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CompleteBooking(c echo.Context) error {
	booking, err := h.bookingSvc.CompleteBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) MarkNoShow(c echo.Context) error {
	booking, err := h.bookingSvc.MarkNoShow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.bookingSvc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListCustomerBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	bookings, err := h.bookingSvc.GetCustomerBookings(c.Request().Context(), c.Param("id"), status, limit)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ListVendorBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}
	var date *time.Time
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		}
		date = &parsed
	}

	bookings, err := h.bookingSvc.GetVendorBookings(c.Request().Context(), c.Param("id"), status, date)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetVendorAnalytics(c echo.Context) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return err
	}
	analytics, err := h.bookingSvc.GetVendorAnalytics(c.Request().Context(), c.Param("id"), start, end)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, analytics)
}

// parsePeriod reads optional from/to query params as calendar dates. The "to"
// bound is pushed to end of day so a single-day range covers the full day.
func parsePeriod(c echo.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if f := c.QueryParam("from"); f != "" {
		parsed, err := time.Parse("2006-01-02", f)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "from must be in YYYY-MM-DD format")
		}
		start = &parsed
	}
	if t := c.QueryParam("to"); t != "" {
		parsed, err := time.Parse("2006-01-02", t)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "to must be in YYYY-MM-DD format")
		}
		eod := parsed.Add(24*time.Hour - time.Nanosecond)
		end = &eod
	}
	return start, end, nil
}
