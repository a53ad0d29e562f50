package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput is the full request for a new booking.
type CreateBookingInput struct {
	CustomerID         string
	VendorID           string
	ServiceID          string
	AddOnServiceIDs    []string
	Date               time.Time
	TimeSlot           string
	PromoCode          string
	LoyaltyPointsToUse int
	Notes              string
}

// PaymentInput identifies a completed payment for a pending booking.
type PaymentInput struct {
	BookingID     string
	PaymentMethod string
	PaymentID     string
}

// VendorAnalytics summarizes a vendor's booking performance over a period.
type VendorAnalytics struct {
	VendorID       string  `json:"vendor_id"`
	TotalBookings  int     `json:"total_bookings"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShows        int     `json:"no_shows"`
	Revenue        float64 `json:"revenue"`
	CompletionRate float64 `json:"completion_rate"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	ProcessPayment(ctx context.Context, input PaymentInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, cancelledBy, reason string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetCustomerBookings(ctx context.Context, customerID string, status *models.BookingStatus, limit int) ([]models.Booking, error)
	GetVendorBookings(ctx context.Context, vendorID string, status *models.BookingStatus, date *time.Time) ([]models.Booking, error)
	GetVendorAnalytics(ctx context.Context, vendorID string, start, end *time.Time) (*VendorAnalytics, error)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	vendorRepo    repository.VendorRepository
	customerRepo  repository.CustomerRepository
	pricingSvc    PricingService
	promoSvc      PromoService
	loyaltySvc    LoyaltyService
	settlementSvc SettlementService
	publisher     EventPublisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vendorRepo repository.VendorRepository,
	customerRepo repository.CustomerRepository,
	pricingSvc PricingService,
	promoSvc PromoService,
	loyaltySvc LoyaltyService,
	settlementSvc SettlementService,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		vendorRepo:    vendorRepo,
		customerRepo:  customerRepo,
		pricingSvc:    pricingSvc,
		promoSvc:      promoSvc,
		loyaltySvc:    loyaltySvc,
		settlementSvc: settlementSvc,
		publisher:     publisher,
	}
}

// CreateBooking resolves the price, verifies the slot against the vendor's
// schedule and the day's active bookings, then inserts the booking. The vendor
// row lock serializes concurrent attempts on the same slot and the partial
// unique index on (vendor, date, slot) is the last line of defense.
func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if _, err := s.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	var booking *models.Booking
	err := runInTransaction(ctx, s.bookingRepo.GetDB(), func(tx *gorm.DB) error {
		vendor, err := s.vendorRepo.FindByIDForUpdate(ctx, tx, input.VendorID)
		if err != nil {
			return ErrVendorNotFound
		}

		quote, err := s.pricingSvc.BuildQuote(ctx, vendor, QuoteInput{
			CustomerID:         input.CustomerID,
			ServiceID:          input.ServiceID,
			AddOnServiceIDs:    input.AddOnServiceIDs,
			PromoCode:          input.PromoCode,
			LoyaltyPointsToUse: input.LoyaltyPointsToUse,
		})
		if err != nil {
			return err
		}

		day := strings.ToLower(input.Date.Weekday().String())
		schedule, ok := vendor.OperatingHours[day]
		if !ok || !schedule.IsOpen {
			return ErrSlotUnavailable
		}
		slots := generateTimeSlots(schedule.OpenTime, schedule.CloseTime, quote.Duration,
			schedule.BreakStart, schedule.BreakEnd)
		if !containsString(slots, input.TimeSlot) {
			return ErrSlotUnavailable
		}

		booked, err := s.bookingRepo.BookedSlots(ctx, tx, input.VendorID, input.Date)
		if err != nil {
			return fmt.Errorf("query booked slots: %w", err)
		}
		if containsString(booked, input.TimeSlot) {
			return ErrSlotTaken
		}

		booking = &models.Booking{
			ID:                uuid.NewString(),
			CustomerID:        input.CustomerID,
			VendorID:          input.VendorID,
			ServiceID:         input.ServiceID,
			AddOnServiceIDs:   quote.AddOnServiceIDs,
			Date:              input.Date,
			TimeSlot:          input.TimeSlot,
			Duration:          quote.Duration,
			BasePrice:         quote.BasePrice,
			AddOnPrice:        quote.AddOnPrice,
			TotalPrice:        quote.Subtotal,
			DiscountAmount:    quote.DiscountAmount,
			FinalPrice:        quote.FinalPrice,
			Status:            models.StatusPending,
			PaymentStatus:     models.PaymentPending,
			LoyaltyPointsUsed: quote.LoyaltyPointsUsed,
			PromoCode:         strings.ToUpper(input.PromoCode),
			PromoDiscount:     quote.PromoDiscount,
			Notes:             input.Notes,
		}
		if quote.PromoCodeID == "" {
			booking.PromoCode = ""
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return fmt.Errorf("create booking: %w", err)
		}

		if quote.PromoCodeID != "" {
			if err := s.promoSvc.Apply(ctx, tx, quote.PromoCodeID, input.CustomerID, booking.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventBookingCreated, booking)
	return booking, nil
}

// ProcessPayment confirms a pending booking: settles the money split, redeems
// the reserved loyalty points and awards new ones on the amount paid.
func (s *bookingService) ProcessPayment(ctx context.Context, input PaymentInput) (*models.Booking, error) {
	var booking *models.Booking
	err := runInTransaction(ctx, s.bookingRepo.GetDB(), func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, input.BookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.PaymentStatus == models.PaymentPaid {
			return ErrAlreadySettled
		}
		if booking.Status != models.StatusPending {
			return ErrInvalidTransition
		}

		if err := s.settlementSvc.Settle(ctx, tx, booking); err != nil {
			return err
		}
		booking.Status = models.StatusConfirmed
		booking.PaymentMethod = input.PaymentMethod
		booking.PaymentID = input.PaymentID

		if booking.LoyaltyPointsUsed > 0 {
			if _, err := s.loyaltySvc.RedeemPoints(ctx, tx, booking.CustomerID, booking.ID, booking.LoyaltyPointsUsed); err != nil {
				return err
			}
		}

		earned, err := s.loyaltySvc.AwardPoints(ctx, tx, booking.CustomerID, booking.ID, booking.FinalPrice)
		if err != nil {
			return err
		}
		booking.LoyaltyPointsEarned = earned

		if err := s.customerRepo.RecordBooking(ctx, tx, booking.CustomerID); err != nil {
			return fmt.Errorf("record booking on customer: %w", err)
		}
		return s.bookingRepo.Save(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventBookingConfirmed, booking)
	return booking, nil
}

// cancellationTokens penalizes late cancellations by the customer. Vendor
// cancellations never cost the customer tokens.
func cancellationTokens(booking *models.Booking, cancelledBy string, now time.Time) int {
	if cancelledBy != "customer" {
		return 0
	}
	until := booking.StartTime().Sub(now)
	switch {
	case until < 2*time.Hour:
		return 2
	case until < 24*time.Hour:
		return 1
	default:
		return 0
	}
}

// CancelBooking cancels a pending or confirmed booking, refunding in full if
// already paid. Terminal and in-progress bookings cannot be cancelled.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, cancelledBy, reason string) (*models.Booking, error) {
	var booking *models.Booking
	err := runInTransaction(ctx, s.bookingRepo.GetDB(), func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Status != models.StatusPending && booking.Status != models.StatusConfirmed {
			return ErrInvalidTransition
		}

		if booking.PaymentStatus == models.PaymentPaid {
			if err := s.settlementSvc.ProcessRefund(ctx, tx, booking, booking.FinalPrice, reason); err != nil {
				return err
			}
		}

		booking.Status = models.StatusCancelled
		booking.CancelledBy = cancelledBy
		booking.CancellationReason = reason
		booking.CancellationTokens = cancellationTokens(booking, cancelledBy, time.Now())
		return s.bookingRepo.Save(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventBookingCancelled, booking)
	return booking, nil
}

// CompleteBooking marks a confirmed or in-progress booking done.
func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking *models.Booking
	err := runInTransaction(ctx, s.bookingRepo.GetDB(), func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Status != models.StatusConfirmed && booking.Status != models.StatusInProgress {
			return ErrInvalidTransition
		}
		booking.Status = models.StatusCompleted
		return s.bookingRepo.Save(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventBookingCompleted, booking)
	return booking, nil
}

// MarkNoShow records that the customer never arrived. The vendor keeps the
// money: an unpaid booking is settled here, and paid bookings stay paid. The
// customer takes the maximum token penalty.
func (s *bookingService) MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking *models.Booking
	err := runInTransaction(ctx, s.bookingRepo.GetDB(), func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Status != models.StatusPending && booking.Status != models.StatusConfirmed {
			return ErrInvalidTransition
		}

		if booking.PaymentStatus != models.PaymentPaid {
			if err := s.settlementSvc.Settle(ctx, tx, booking); err != nil {
				return err
			}
		}

		booking.Status = models.StatusNoShow
		booking.CancellationTokens = 3
		return s.bookingRepo.Save(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventBookingNoShow, booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID string, status *models.BookingStatus, limit int) ([]models.Booking, error) {
	return s.bookingRepo.FindByCustomer(ctx, customerID, status, limit)
}

func (s *bookingService) GetVendorBookings(ctx context.Context, vendorID string, status *models.BookingStatus, date *time.Time) ([]models.Booking, error) {
	return s.bookingRepo.FindByVendor(ctx, vendorID, status, date)
}

func (s *bookingService) GetVendorAnalytics(ctx context.Context, vendorID string, start, end *time.Time) (*VendorAnalytics, error) {
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		return nil, ErrVendorNotFound
	}

	bookings, err := s.bookingRepo.FindByVendorCreatedBetween(ctx, vendorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load vendor bookings: %w", err)
	}

	analytics := &VendorAnalytics{VendorID: vendorID, TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusCompleted:
			analytics.Completed++
		case models.StatusCancelled:
			analytics.Cancelled++
		case models.StatusNoShow:
			analytics.NoShows++
		}
		if b.PaymentStatus == models.PaymentPaid {
			analytics.Revenue += b.VendorEarnings
		}
	}
	analytics.Revenue = Round2(analytics.Revenue)
	if analytics.TotalBookings > 0 {
		analytics.CompletionRate = Round2(float64(analytics.Completed) / float64(analytics.TotalBookings) * 100)
	}
	return analytics, nil
}
