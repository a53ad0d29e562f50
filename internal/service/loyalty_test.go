package service

import (
	"context"
	"testing"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAwardPoints_FloorsAmountAndSetsExpiry(t *testing.T) {
	var entry *models.LoyaltyTransaction
	var cached int

	svc := NewLoyaltyService(
		&mockLoyaltyRepo{createFn: func(ctx context.Context, tx *gorm.DB, e *models.LoyaltyTransaction) error {
			entry = e
			return nil
		}},
		&mockCustomerRepo{addLoyaltyPointsFn: func(ctx context.Context, tx *gorm.DB, customerID string, delta int) error {
			cached += delta
			return nil
		}},
	)

	points, err := svc.AwardPoints(context.Background(), nil, "cust-1", "booking-1", 2450.75)

	assert.NoError(t, err)
	assert.Equal(t, 2450, points)
	assert.Equal(t, 2450, cached)
	assert.Equal(t, models.PointsEarned, entry.Type)
	assert.Equal(t, 2450, entry.Points)
	assert.NotNil(t, entry.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, PointsExpiryDays), *entry.ExpiresAt, time.Minute)
}

func TestAwardPoints_SubRupeeAmountIsNoOp(t *testing.T) {
	created := false
	svc := NewLoyaltyService(
		&mockLoyaltyRepo{createFn: func(ctx context.Context, tx *gorm.DB, e *models.LoyaltyTransaction) error {
			created = true
			return nil
		}},
		&mockCustomerRepo{},
	)

	points, err := svc.AwardPoints(context.Background(), nil, "cust-1", "booking-1", 0.50)

	assert.NoError(t, err)
	assert.Zero(t, points)
	assert.False(t, created)
}

func TestRedeemPoints_BelowMinimum(t *testing.T) {
	svc := NewLoyaltyService(&mockLoyaltyRepo{}, &mockCustomerRepo{})

	_, err := svc.RedeemPoints(context.Background(), nil, "cust-1", "booking-1", 99)

	assert.ErrorIs(t, err, ErrMinRedemption)
}

func TestRedeemPoints_InsufficientBalance(t *testing.T) {
	svc := NewLoyaltyService(
		&mockLoyaltyRepo{sumAvailableFn: func(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error) {
			return 150, nil
		}},
		&mockCustomerRepo{},
	)

	_, err := svc.RedeemPoints(context.Background(), nil, "cust-1", "booking-1", 200)

	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestRedeemPoints_AppendsNegativeEntry(t *testing.T) {
	var entry *models.LoyaltyTransaction
	var cached int

	svc := NewLoyaltyService(
		&mockLoyaltyRepo{
			sumAvailableFn: func(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error) {
				return 500, nil
			},
			createFn: func(ctx context.Context, tx *gorm.DB, e *models.LoyaltyTransaction) error {
				entry = e
				return nil
			},
		},
		&mockCustomerRepo{addLoyaltyPointsFn: func(ctx context.Context, tx *gorm.DB, customerID string, delta int) error {
			cached += delta
			return nil
		}},
	)

	value, err := svc.RedeemPoints(context.Background(), nil, "cust-1", "booking-1", 200)

	assert.NoError(t, err)
	assert.Equal(t, 200.0, value)
	assert.Equal(t, models.PointsRedeemed, entry.Type)
	assert.Equal(t, -200, entry.Points)
	assert.Nil(t, entry.ExpiresAt)
	assert.Equal(t, -200, cached)
}

func TestGetAvailablePoints_FlooredAtZero(t *testing.T) {
	svc := NewLoyaltyService(
		&mockLoyaltyRepo{sumAvailableFn: func(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error) {
			return -40, nil
		}},
		&mockCustomerRepo{},
	)

	points, err := svc.GetAvailablePoints(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Zero(t, points)
}

func TestExpireOldPoints_OffsetsAndMarksProcessed(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	expirable := []models.LoyaltyTransaction{
		{ID: "lt-1", CustomerID: "cust-1", Type: models.PointsEarned, Points: 300, ExpiresAt: &past},
		{ID: "lt-2", CustomerID: "cust-2", Type: models.PointsEarned, Points: 120, ExpiresAt: &past},
	}

	var offsets []*models.LoyaltyTransaction
	var processed []string
	cacheDeltas := map[string]int{}

	svc := NewLoyaltyService(
		&mockLoyaltyRepo{
			findExpirableFn: func(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.LoyaltyTransaction, error) {
				return expirable, nil
			},
			createFn: func(ctx context.Context, tx *gorm.DB, e *models.LoyaltyTransaction) error {
				offsets = append(offsets, e)
				return nil
			},
			markExpiryProcessedFn: func(ctx context.Context, tx *gorm.DB, id string) error {
				processed = append(processed, id)
				return nil
			},
		},
		&mockCustomerRepo{addLoyaltyPointsFn: func(ctx context.Context, tx *gorm.DB, customerID string, delta int) error {
			cacheDeltas[customerID] += delta
			return nil
		}},
	)

	count, err := svc.ExpireOldPoints(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"lt-1", "lt-2"}, processed)
	assert.Equal(t, -300, cacheDeltas["cust-1"])
	assert.Equal(t, -120, cacheDeltas["cust-2"])
	for _, offset := range offsets {
		assert.Equal(t, models.PointsExpired, offset.Type)
		assert.Negative(t, offset.Points)
	}
}
