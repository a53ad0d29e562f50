package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoValidation is the structured outcome of a validation attempt. A failed
// rule is a soft failure the caller renders; only store errors surface as errors.
type PromoValidation struct {
	Valid       bool    `json:"is_valid"`
	Discount    float64 `json:"discount"`
	Message     string  `json:"message"`
	PromoCodeID string  `json:"promo_code_id,omitempty"`
}

type PromoService interface {
	Validate(ctx context.Context, code, customerID string, orderValue float64, serviceIDs []string, vendorID string) (*PromoValidation, error)
	Apply(ctx context.Context, tx *gorm.DB, promoCodeID, customerID, bookingID string) error
	Create(ctx context.Context, promo *models.PromoCode) error
	CreateFirstTimeUserDiscount(ctx context.Context) (*models.PromoCode, error)
	Deactivate(ctx context.Context, promoCodeID string) error
	GetActive(ctx context.Context) ([]models.PromoCode, error)
}

type promoService struct {
	promoRepo    repository.PromoRepository
	customerRepo repository.CustomerRepository
}

func NewPromoService(promoRepo repository.PromoRepository, customerRepo repository.CustomerRepository) PromoService {
	return &promoService{promoRepo: promoRepo, customerRepo: customerRepo}
}

func invalid(message string) *PromoValidation {
	return &PromoValidation{Valid: false, Discount: 0, Message: message}
}

// Validate runs the rule chain in order: existence/active, validity window,
// global usage cap, per-customer cap, minimum order value, first-time
// eligibility, service/vendor applicability. The first failing rule wins.
func (s *promoService) Validate(ctx context.Context, code, customerID string, orderValue float64, serviceIDs []string, vendorID string) (*PromoValidation, error) {
	promo, err := s.promoRepo.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("Invalid promo code"), nil
		}
		return nil, fmt.Errorf("look up promo code: %w", err)
	}

	now := time.Now()
	if !now.Before(promo.EndDate) {
		return invalid("Promo code has expired"), nil
	}
	if promo.StartDate.After(now) {
		return invalid("Promo code is not yet active"), nil
	}

	if promo.UsedCount >= promo.UsageLimit {
		return invalid("Promo code usage limit exceeded"), nil
	}

	used, err := s.promoRepo.CountUsageByCustomer(ctx, s.promoRepo.GetDB(), promo.ID, customerID)
	if err != nil {
		return nil, fmt.Errorf("count promo usage: %w", err)
	}
	if used >= int64(promo.UserLimit) {
		return invalid("You have already used this promo code"), nil
	}

	if orderValue < promo.MinOrderValue {
		return invalid(fmt.Sprintf("Minimum order value of ₹%.0f required", promo.MinOrderValue)), nil
	}

	if promo.Type == models.PromoFirstTime {
		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil || !customer.IsFirstTimeUser {
			return invalid("This promo code is only for first-time users"), nil
		}
	}

	if len(promo.ApplicableServices) > 0 {
		applicable := false
		for _, id := range serviceIDs {
			if containsString(promo.ApplicableServices, id) {
				applicable = true
				break
			}
		}
		if !applicable {
			return invalid("Promo code not applicable for selected services"), nil
		}
	}

	if len(promo.ApplicableVendors) > 0 && !containsString(promo.ApplicableVendors, vendorID) {
		return invalid("Promo code not applicable for this vendor"), nil
	}

	discount := promoDiscount(promo, orderValue)
	return &PromoValidation{
		Valid:       true,
		Discount:    discount,
		Message:     fmt.Sprintf("Promo code applied! You saved ₹%.0f", discount),
		PromoCodeID: promo.ID,
	}, nil
}

// promoDiscount computes the rupee discount for an order value. Percentage
// discounts respect the optional cap; fixed discounts never exceed the order.
func promoDiscount(promo *models.PromoCode, orderValue float64) float64 {
	var discount float64
	switch promo.Type {
	case models.PromoPercentage:
		discount = orderValue * promo.Value / 100
		if promo.MaxDiscount > 0 && discount > promo.MaxDiscount {
			discount = promo.MaxDiscount
		}
	case models.PromoFixed, models.PromoFirstTime:
		discount = math.Min(promo.Value, orderValue)
	}
	return math.Round(discount)
}

// Apply consumes one use of the code. Both caps checked at validation time are
// re-enforced here, inside the booking transaction: the conditional increment
// guards the global usage limit, and the per-customer limit is re-counted with
// the usage ordinal backed by a unique index, so two concurrent bookings by
// the same customer cannot both slip past the user limit.
func (s *promoService) Apply(ctx context.Context, tx *gorm.DB, promoCodeID, customerID, bookingID string) error {
	promo, err := s.promoRepo.FindByID(ctx, promoCodeID)
	if err != nil {
		return fmt.Errorf("load promo code: %w", err)
	}

	used, err := s.promoRepo.CountUsageByCustomer(ctx, tx, promoCodeID, customerID)
	if err != nil {
		return fmt.Errorf("count promo usage: %w", err)
	}
	if used >= int64(promo.UserLimit) {
		return ErrPromoUserLimit
	}

	ok, err := s.promoRepo.IncrementUsage(ctx, tx, promoCodeID)
	if err != nil {
		return fmt.Errorf("increment promo usage: %w", err)
	}
	if !ok {
		return ErrPromoExhausted
	}

	err = s.promoRepo.RecordUsage(ctx, tx, &models.PromoUsage{
		ID:           uuid.NewString(),
		PromoCodeID:  promoCodeID,
		CustomerID:   customerID,
		BookingID:    bookingID,
		UsageOrdinal: int(used) + 1,
		UsedAt:       time.Now(),
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPromoUserLimit
	}
	return err
}

func (s *promoService) Create(ctx context.Context, promo *models.PromoCode) error {
	if strings.TrimSpace(promo.Code) == "" {
		return errors.New("promo code is required")
	}
	if promo.Value <= 0 {
		return errors.New("promo value must be positive")
	}
	if !promo.StartDate.Before(promo.EndDate) {
		return errors.New("promo end date must be after start date")
	}
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	promo.UsedCount = 0
	return s.promoRepo.Create(ctx, promo)
}

// CreateFirstTimeUserDiscount seeds the standing WELCOME200 offer.
func (s *promoService) CreateFirstTimeUserDiscount(ctx context.Context) (*models.PromoCode, error) {
	promo := &models.PromoCode{
		ID:            uuid.NewString(),
		Code:          "WELCOME200",
		Type:          models.PromoFirstTime,
		Value:         200,
		MinOrderValue: 500,
		UsageLimit:    10000,
		UserLimit:     1,
		IsActive:      true,
		StartDate:     time.Now(),
		EndDate:       time.Now().AddDate(1, 0, 0),
		CreatedBy:     "system",
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *promoService) Deactivate(ctx context.Context, promoCodeID string) error {
	return s.promoRepo.Deactivate(ctx, promoCodeID)
}

func (s *promoService) GetActive(ctx context.Context) ([]models.PromoCode, error) {
	return s.promoRepo.FindActive(ctx, time.Now())
}
