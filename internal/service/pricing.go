package service

import (
	"context"
	"fmt"

	"github.com/glowslot/booking-platform/internal/models"
)

// QuoteInput carries everything a price computation needs besides the vendor.
type QuoteInput struct {
	CustomerID         string
	ServiceID          string
	AddOnServiceIDs    []string
	PromoCode          string
	LoyaltyPointsToUse int
}

// Quote is the fully resolved price breakdown for a prospective booking.
type Quote struct {
	ServiceID         string   `json:"service_id"`
	AddOnServiceIDs   []string `json:"add_on_service_ids"`
	Duration          int      `json:"duration"`
	BasePrice         float64  `json:"base_price"`
	AddOnPrice        float64  `json:"add_on_price"`
	Subtotal          float64  `json:"subtotal"`
	PromoCodeID       string   `json:"promo_code_id,omitempty"`
	PromoDiscount     float64  `json:"promo_discount"`
	PromoMessage      string   `json:"promo_message,omitempty"`
	LoyaltyPointsUsed int      `json:"loyalty_points_used"`
	LoyaltyDiscount   float64  `json:"loyalty_discount"`
	DiscountAmount    float64  `json:"discount_amount"`
	FinalPrice        float64  `json:"final_price"`
}

type PricingService interface {
	BuildQuote(ctx context.Context, vendor *models.Vendor, input QuoteInput) (*Quote, error)
}

type pricingService struct {
	promoSvc   PromoService
	loyaltySvc LoyaltyService
}

func NewPricingService(promoSvc PromoService, loyaltySvc LoyaltyService) PricingService {
	return &pricingService{promoSvc: promoSvc, loyaltySvc: loyaltySvc}
}

// BuildQuote resolves the price for one service plus add-ons, then layers the
// promo discount and loyalty redemption on the subtotal. Promo failures are
// soft: the quote carries the message and a zero discount. Unknown add-on ids
// are skipped rather than rejected.
func (s *pricingService) BuildQuote(ctx context.Context, vendor *models.Vendor, input QuoteInput) (*Quote, error) {
	svc := vendor.FindService(input.ServiceID)
	if svc == nil || !svc.IsActive {
		return nil, ErrServiceNotFound
	}

	quote := &Quote{
		ServiceID: input.ServiceID,
		Duration:  svc.Duration,
		BasePrice: svc.Price,
	}

	for _, addOnID := range input.AddOnServiceIDs {
		addOn := svc.FindAddOn(addOnID)
		if addOn == nil {
			continue
		}
		quote.AddOnServiceIDs = append(quote.AddOnServiceIDs, addOn.ID)
		quote.AddOnPrice += addOn.Price
		quote.Duration += addOn.Duration
	}
	quote.Subtotal = Round2(quote.BasePrice + quote.AddOnPrice)

	if input.PromoCode != "" {
		validation, err := s.promoSvc.Validate(ctx, input.PromoCode, input.CustomerID,
			quote.Subtotal, []string{input.ServiceID}, vendor.ID)
		if err != nil {
			return nil, fmt.Errorf("validate promo code: %w", err)
		}
		quote.PromoMessage = validation.Message
		if validation.Valid {
			quote.PromoCodeID = validation.PromoCodeID
			quote.PromoDiscount = validation.Discount
		}
	}

	if input.LoyaltyPointsToUse >= MinRedemptionPoints {
		available, err := s.loyaltySvc.GetAvailablePoints(ctx, input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("look up loyalty balance: %w", err)
		}
		points := input.LoyaltyPointsToUse
		if points > available {
			points = available
		}
		if points >= MinRedemptionPoints {
			quote.LoyaltyPointsUsed = points
			quote.LoyaltyDiscount = float64(points) * PointRedemptionValue
		}
	}

	quote.DiscountAmount = Round2(quote.PromoDiscount + quote.LoyaltyDiscount)
	final := Round2(quote.Subtotal - quote.DiscountAmount)
	if final < 0 {
		final = 0
	}
	quote.FinalPrice = final
	return quote, nil
}
