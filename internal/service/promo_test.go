package service

import (
	"context"
	"testing"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func activePromo() *models.PromoCode {
	return &models.PromoCode{
		ID:            "promo-1",
		Code:          "SAVE50",
		Type:          models.PromoPercentage,
		Value:         10,
		MinOrderValue: 1000,
		MaxDiscount:   50,
		UsageLimit:    100,
		UsedCount:     5,
		UserLimit:     1,
		IsActive:      true,
		StartDate:     time.Now().Add(-24 * time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
	}
}

func newPromoService(promo *models.PromoCode, customer *models.Customer) PromoService {
	promoRepo := &mockPromoRepo{
		findActiveByCodeFn: func(ctx context.Context, code string) (*models.PromoCode, error) {
			if promo == nil {
				return nil, gorm.ErrRecordNotFound
			}
			return promo, nil
		},
	}
	customerRepo := &mockCustomerRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Customer, error) {
			if customer == nil {
				return nil, gorm.ErrRecordNotFound
			}
			return customer, nil
		},
	}
	return NewPromoService(promoRepo, customerRepo)
}

func TestValidate_PercentageCappedAtMaxDiscount(t *testing.T) {
	svc := newPromoService(activePromo(), nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, []string{"svc-1"}, "vendor-1")

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	// 10% of 2500 is 250, capped at 50.
	assert.Equal(t, 50.0, result.Discount)
	assert.Equal(t, "promo-1", result.PromoCodeID)
}

func TestValidate_UnknownCode(t *testing.T) {
	svc := newPromoService(nil, nil)

	result, err := svc.Validate(context.Background(), "NOPE", "cust-1", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid promo code", result.Message)
}

func TestValidate_Expired(t *testing.T) {
	promo := activePromo()
	promo.EndDate = time.Now().Add(-time.Hour)
	svc := newPromoService(promo, nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Promo code has expired", result.Message)
}

func TestValidate_NotYetActive(t *testing.T) {
	promo := activePromo()
	promo.StartDate = time.Now().Add(time.Hour)
	svc := newPromoService(promo, nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Promo code is not yet active", result.Message)
}

func TestValidate_GlobalLimitReached(t *testing.T) {
	promo := activePromo()
	promo.UsedCount = promo.UsageLimit
	svc := newPromoService(promo, nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Promo code usage limit exceeded", result.Message)
}

func TestValidate_PerCustomerLimitReached(t *testing.T) {
	promoRepo := &mockPromoRepo{
		findActiveByCodeFn: func(ctx context.Context, code string) (*models.PromoCode, error) {
			return activePromo(), nil
		},
		countUsageByCustomerFn: func(ctx context.Context, tx *gorm.DB, promoID, customerID string) (int64, error) {
			return 1, nil
		},
	}
	svc := NewPromoService(promoRepo, &mockCustomerRepo{})

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "You have already used this promo code", result.Message)
}

func TestValidate_BelowMinOrderValue(t *testing.T) {
	svc := newPromoService(activePromo(), nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 800, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Minimum order value of ₹1000 required", result.Message)
}

func TestValidate_FirstTimeOnly(t *testing.T) {
	promo := activePromo()
	promo.Type = models.PromoFirstTime
	promo.Value = 200

	returning := &models.Customer{ID: "cust-1", IsFirstTimeUser: false}
	svc := newPromoService(promo, returning)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This promo code is only for first-time users", result.Message)

	fresh := &models.Customer{ID: "cust-2", IsFirstTimeUser: true}
	svc = newPromoService(promo, fresh)

	result, err = svc.Validate(context.Background(), "SAVE50", "cust-2", 2500, nil, "vendor-1")

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 200.0, result.Discount)
}

func TestValidate_ServiceAndVendorScope(t *testing.T) {
	promo := activePromo()
	promo.ApplicableServices = []string{"svc-9"}
	svc := newPromoService(promo, nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, []string{"svc-1"}, "vendor-1")
	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Promo code not applicable for selected services", result.Message)

	promo = activePromo()
	promo.ApplicableVendors = []string{"vendor-9"}
	svc = newPromoService(promo, nil)

	result, err = svc.Validate(context.Background(), "SAVE50", "cust-1", 2500, []string{"svc-1"}, "vendor-1")
	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Promo code not applicable for this vendor", result.Message)
}

func TestValidate_FixedDiscountNeverExceedsOrder(t *testing.T) {
	promo := activePromo()
	promo.Type = models.PromoFixed
	promo.Value = 3000
	promo.MinOrderValue = 0
	svc := newPromoService(promo, nil)

	result, err := svc.Validate(context.Background(), "SAVE50", "cust-1", 1200, nil, "vendor-1")

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1200.0, result.Discount)
}

func applyPromoRepo(promo *models.PromoCode) *mockPromoRepo {
	return &mockPromoRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.PromoCode, error) {
			return promo, nil
		},
	}
}

func TestApply_ExhaustedUnderConcurrency(t *testing.T) {
	promoRepo := applyPromoRepo(activePromo())
	promoRepo.incrementUsageFn = func(ctx context.Context, tx *gorm.DB, promoID string) (bool, error) {
		return false, nil
	}
	svc := NewPromoService(promoRepo, &mockCustomerRepo{})

	err := svc.Apply(context.Background(), nil, "promo-1", "cust-1", "booking-1")

	assert.ErrorIs(t, err, ErrPromoExhausted)
}

func TestApply_RecordsUsage(t *testing.T) {
	var recorded *models.PromoUsage
	promoRepo := applyPromoRepo(activePromo())
	promoRepo.recordUsageFn = func(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error {
		recorded = usage
		return nil
	}
	svc := NewPromoService(promoRepo, &mockCustomerRepo{})

	err := svc.Apply(context.Background(), nil, "promo-1", "cust-1", "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, "promo-1", recorded.PromoCodeID)
	assert.Equal(t, "cust-1", recorded.CustomerID)
	assert.Equal(t, "booking-1", recorded.BookingID)
	assert.Equal(t, 1, recorded.UsageOrdinal)
}

func TestApply_UserLimitRecheckedInTransaction(t *testing.T) {
	// A redemption committed between validation and apply must be seen here.
	promoRepo := applyPromoRepo(activePromo())
	promoRepo.countUsageByCustomerFn = func(ctx context.Context, tx *gorm.DB, promoID, customerID string) (int64, error) {
		return 1, nil
	}
	incremented := false
	promoRepo.incrementUsageFn = func(ctx context.Context, tx *gorm.DB, promoID string) (bool, error) {
		incremented = true
		return true, nil
	}
	svc := NewPromoService(promoRepo, &mockCustomerRepo{})

	err := svc.Apply(context.Background(), nil, "promo-1", "cust-1", "booking-1")

	assert.ErrorIs(t, err, ErrPromoUserLimit)
	assert.False(t, incremented)
}

func TestApply_ConcurrentSameCustomerLosesOnOrdinal(t *testing.T) {
	// Two in-flight redemptions count the same prior usage; the second insert
	// hits the ordinal unique index and must surface as a user-limit error.
	promoRepo := applyPromoRepo(activePromo())
	promoRepo.recordUsageFn = func(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error {
		return gorm.ErrDuplicatedKey
	}
	svc := NewPromoService(promoRepo, &mockCustomerRepo{})

	err := svc.Apply(context.Background(), nil, "promo-1", "cust-1", "booking-1")

	assert.ErrorIs(t, err, ErrPromoUserLimit)
}
