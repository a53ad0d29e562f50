package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// PointsPerRupee is the earn rate on the final paid amount.
	PointsPerRupee = 1
	// PointRedemptionValue is the rupee value of one redeemed point.
	PointRedemptionValue = 1.0
	// MinRedemptionPoints is the smallest redeemable batch.
	MinRedemptionPoints = 100
	// PointsExpiryDays is how long earned points stay redeemable.
	PointsExpiryDays = 365
)

type LoyaltyService interface {
	AwardPoints(ctx context.Context, tx *gorm.DB, customerID, bookingID string, amountPaid float64) (int, error)
	RedeemPoints(ctx context.Context, tx *gorm.DB, customerID, bookingID string, points int) (float64, error)
	GetAvailablePoints(ctx context.Context, customerID string) (int, error)
	GetHistory(ctx context.Context, customerID string) ([]models.LoyaltyTransaction, error)
	ExpireOldPoints(ctx context.Context) (int, error)
}

type loyaltyService struct {
	loyaltyRepo  repository.LoyaltyRepository
	customerRepo repository.CustomerRepository
}

func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository, customerRepo repository.CustomerRepository) LoyaltyService {
	return &loyaltyService{loyaltyRepo: loyaltyRepo, customerRepo: customerRepo}
}

// AwardPoints credits floor(amountPaid) points with a 365-day expiry. Amounts
// under one rupee award nothing and append no entry.
func (s *loyaltyService) AwardPoints(ctx context.Context, tx *gorm.DB, customerID, bookingID string, amountPaid float64) (int, error) {
	points := int(math.Floor(amountPaid)) * PointsPerRupee
	if points <= 0 {
		return 0, nil
	}

	expiresAt := time.Now().AddDate(0, 0, PointsExpiryDays)
	entry := &models.LoyaltyTransaction{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Type:        models.PointsEarned,
		Points:      points,
		BookingID:   bookingID,
		Description: fmt.Sprintf("Earned %d points for booking", points),
		ExpiresAt:   &expiresAt,
	}
	if err := s.loyaltyRepo.Create(ctx, tx, entry); err != nil {
		return 0, fmt.Errorf("record earned points: %w", err)
	}
	if err := s.customerRepo.AddLoyaltyPoints(ctx, tx, customerID, points); err != nil {
		return 0, fmt.Errorf("update points balance: %w", err)
	}
	return points, nil
}

// RedeemPoints debits points against a booking and returns the rupee value.
// The balance check replays the ledger inside the caller's transaction.
func (s *loyaltyService) RedeemPoints(ctx context.Context, tx *gorm.DB, customerID, bookingID string, points int) (float64, error) {
	if points < MinRedemptionPoints {
		return 0, ErrMinRedemption
	}

	available, err := s.loyaltyRepo.SumAvailable(ctx, tx, customerID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("compute points balance: %w", err)
	}
	if available < points {
		return 0, ErrInsufficientPoints
	}

	entry := &models.LoyaltyTransaction{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Type:        models.PointsRedeemed,
		Points:      -points,
		BookingID:   bookingID,
		Description: fmt.Sprintf("Redeemed %d points on booking", points),
	}
	if err := s.loyaltyRepo.Create(ctx, tx, entry); err != nil {
		return 0, fmt.Errorf("record redeemed points: %w", err)
	}
	if err := s.customerRepo.AddLoyaltyPoints(ctx, tx, customerID, -points); err != nil {
		return 0, fmt.Errorf("update points balance: %w", err)
	}
	return float64(points) * PointRedemptionValue, nil
}

func (s *loyaltyService) GetAvailablePoints(ctx context.Context, customerID string) (int, error) {
	available, err := s.loyaltyRepo.SumAvailable(ctx, s.loyaltyRepo.GetDB(), customerID, time.Now())
	if err != nil {
		return 0, err
	}
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (s *loyaltyService) GetHistory(ctx context.Context, customerID string) ([]models.LoyaltyTransaction, error) {
	return s.loyaltyRepo.FindByCustomer(ctx, customerID)
}

// ExpireOldPoints sweeps earned entries past their expiry window, appending an
// offsetting expired entry per batch and adjusting the cached balance. Safe to
// run repeatedly; processed entries are flagged and skipped.
func (s *loyaltyService) ExpireOldPoints(ctx context.Context) (int, error) {
	expired := 0
	err := runInTransaction(ctx, s.loyaltyRepo.GetDB(), func(tx *gorm.DB) error {
		now := time.Now()
		entries, err := s.loyaltyRepo.FindExpirable(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("find expirable points: %w", err)
		}
		for _, entry := range entries {
			offset := &models.LoyaltyTransaction{
				ID:          uuid.NewString(),
				CustomerID:  entry.CustomerID,
				Type:        models.PointsExpired,
				Points:      -entry.Points,
				Description: fmt.Sprintf("%d points expired", entry.Points),
			}
			if err := s.loyaltyRepo.Create(ctx, tx, offset); err != nil {
				return fmt.Errorf("record expired points: %w", err)
			}
			if err := s.loyaltyRepo.MarkExpiryProcessed(ctx, tx, entry.ID); err != nil {
				return fmt.Errorf("mark entry processed: %w", err)
			}
			if err := s.customerRepo.AddLoyaltyPoints(ctx, tx, entry.CustomerID, -entry.Points); err != nil {
				return fmt.Errorf("update points balance: %w", err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}
