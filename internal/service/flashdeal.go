package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlashDealResult reports a claim attempt. A failed business rule is a soft
// failure carried in Message; only store errors bubble up as errors.
type FlashDealResult struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Booking *models.FlashDealBooking `json:"booking,omitempty"`
}

type FlashDealService interface {
	Create(ctx context.Context, deal *models.FlashDeal) error
	Book(ctx context.Context, dealID, customerID string) (*FlashDealResult, error)
	Redeem(ctx context.Context, bookingID, vendorID string) (*FlashDealResult, error)
	GetActiveDeals(ctx context.Context, vendorID string) ([]models.FlashDeal, error)
	GetUpcomingDeals(ctx context.Context, vendorID string, limit int) ([]models.FlashDeal, error)
	GetCustomerBookings(ctx context.Context, customerID string) ([]models.FlashDealBooking, error)
	ExpireOldDeals(ctx context.Context) (int64, error)
	ToggleDeal(ctx context.Context, dealID string, active bool) error
}

type flashDealService struct {
	dealRepo        repository.FlashDealRepository
	dealBookingRepo repository.FlashDealBookingRepository
	vendorRepo      repository.VendorRepository
}

func NewFlashDealService(
	dealRepo repository.FlashDealRepository,
	dealBookingRepo repository.FlashDealBookingRepository,
	vendorRepo repository.VendorRepository,
) FlashDealService {
	return &flashDealService{
		dealRepo:        dealRepo,
		dealBookingRepo: dealBookingRepo,
		vendorRepo:      vendorRepo,
	}
}

func (s *flashDealService) Create(ctx context.Context, deal *models.FlashDeal) error {
	if !deal.StartTime.Before(deal.EndTime) {
		return ErrDealWindowInvalid
	}
	if deal.DiscountedPrice <= 0 || deal.DiscountedPrice >= deal.OriginalPrice {
		return ErrDealPricingInvalid
	}
	if deal.TotalSlots <= 0 {
		return ErrDealSlotsInvalid
	}

	vendor, err := s.vendorRepo.FindByID(ctx, deal.VendorID)
	if err != nil {
		return ErrVendorNotFound
	}
	if vendor.FindService(deal.ServiceID) == nil {
		return ErrServiceNotFound
	}

	if deal.ID == "" {
		deal.ID = uuid.NewString()
	}
	deal.BookedSlots = 0
	deal.IsActive = true
	deal.DiscountPercentage = int(math.Round((deal.OriginalPrice - deal.DiscountedPrice) / deal.OriginalPrice * 100))
	return s.dealRepo.Create(ctx, deal)
}

func dealRefused(message string) *FlashDealResult {
	return &FlashDealResult{Success: false, Message: message}
}

// Book claims one slot for the customer. The deal row is locked and the slot
// claim is a conditional increment, so the slot count can never oversell; the
// unique (deal, customer) index backstops the duplicate check under races.
func (s *flashDealService) Book(ctx context.Context, dealID, customerID string) (*FlashDealResult, error) {
	var result *FlashDealResult
	err := runInTransaction(ctx, s.dealRepo.GetDB(), func(tx *gorm.DB) error {
		deal, err := s.dealRepo.FindByIDForUpdate(ctx, tx, dealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = dealRefused("Flash deal not found")
				return nil
			}
			return fmt.Errorf("lock flash deal: %w", err)
		}

		now := time.Now()
		switch {
		case !deal.IsActive:
			result = dealRefused("Flash deal is not active")
			return nil
		case now.Before(deal.StartTime):
			result = dealRefused("Flash deal has not started yet")
			return nil
		case !now.Before(deal.EndTime):
			result = dealRefused("Flash deal has expired")
			return nil
		case deal.BookedSlots >= deal.TotalSlots:
			result = dealRefused("All slots are booked")
			return nil
		}

		exists, err := s.dealBookingRepo.ExistsForCustomer(ctx, tx, dealID, customerID)
		if err != nil {
			return fmt.Errorf("check existing claim: %w", err)
		}
		if exists {
			result = dealRefused("You have already booked this flash deal")
			return nil
		}

		claimed, err := s.dealRepo.IncrementBookedSlots(ctx, tx, dealID)
		if err != nil {
			return fmt.Errorf("claim slot: %w", err)
		}
		if !claimed {
			result = dealRefused("All slots are booked")
			return nil
		}

		booking := &models.FlashDealBooking{
			ID:              uuid.NewString(),
			DealID:          dealID,
			CustomerID:      customerID,
			VendorID:        deal.VendorID,
			ServiceID:       deal.ServiceID,
			OriginalPrice:   deal.OriginalPrice,
			DiscountedPrice: deal.DiscountedPrice,
			Savings:         Round2(deal.OriginalPrice - deal.DiscountedPrice),
			Status:          models.FlashBooked,
			BookedAt:        now,
			ExpiresAt:       deal.EndTime,
		}
		if err := s.dealBookingRepo.Create(ctx, tx, booking); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result = dealRefused("You have already booked this flash deal")
				return nil
			}
			return fmt.Errorf("create deal booking: %w", err)
		}

		result = &FlashDealResult{
			Success: true,
			Message: fmt.Sprintf("Deal booked! You saved ₹%.0f", booking.Savings),
			Booking: booking,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Redeem marks a claimed slot as used at the vendor's counter. Only the deal's
// vendor may redeem, and only while the claim is still live.
func (s *flashDealService) Redeem(ctx context.Context, bookingID, vendorID string) (*FlashDealResult, error) {
	var result *FlashDealResult
	err := runInTransaction(ctx, s.dealRepo.GetDB(), func(tx *gorm.DB) error {
		booking, err := s.dealBookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = dealRefused("Booking not found")
				return nil
			}
			return fmt.Errorf("lock deal booking: %w", err)
		}

		switch {
		case booking.VendorID != vendorID:
			result = dealRefused("Unauthorized")
			return nil
		case booking.Status == models.FlashRedeemed:
			result = dealRefused("Already redeemed")
			return nil
		case booking.Status == models.FlashExpired:
			result = dealRefused("Booking has expired")
			return nil
		}

		now := time.Now()
		if now.After(booking.ExpiresAt) {
			if err := s.dealBookingRepo.UpdateStatus(ctx, tx, bookingID, models.FlashExpired, nil); err != nil {
				return fmt.Errorf("expire deal booking: %w", err)
			}
			result = dealRefused("Booking has expired")
			return nil
		}

		if err := s.dealBookingRepo.UpdateStatus(ctx, tx, bookingID, models.FlashRedeemed, &now); err != nil {
			return fmt.Errorf("redeem deal booking: %w", err)
		}
		booking.Status = models.FlashRedeemed
		booking.RedeemedAt = &now
		result = &FlashDealResult{Success: true, Message: "Deal redeemed", Booking: booking}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *flashDealService) GetActiveDeals(ctx context.Context, vendorID string) ([]models.FlashDeal, error) {
	return s.dealRepo.FindActive(ctx, time.Now(), vendorID)
}

func (s *flashDealService) GetUpcomingDeals(ctx context.Context, vendorID string, limit int) ([]models.FlashDeal, error) {
	return s.dealRepo.FindUpcoming(ctx, time.Now(), vendorID, limit)
}

func (s *flashDealService) GetCustomerBookings(ctx context.Context, customerID string) ([]models.FlashDealBooking, error) {
	return s.dealBookingRepo.FindByCustomer(ctx, customerID)
}

// ExpireOldDeals deactivates ended deals and expires unredeemed claims.
// Both updates are set-based and idempotent.
func (s *flashDealService) ExpireOldDeals(ctx context.Context) (int64, error) {
	now := time.Now()
	deals, err := s.dealRepo.DeactivateEnded(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate ended deals: %w", err)
	}
	claims, err := s.dealBookingRepo.ExpireStale(ctx, now)
	if err != nil {
		return deals, fmt.Errorf("expire stale claims: %w", err)
	}
	return deals + claims, nil
}

func (s *flashDealService) ToggleDeal(ctx context.Context, dealID string, active bool) error {
	if _, err := s.dealRepo.FindByID(ctx, dealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDealNotFound
		}
		return err
	}
	return s.dealRepo.SetActive(ctx, dealID, active)
}
