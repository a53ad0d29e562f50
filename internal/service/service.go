package service

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

var (
	ErrVendorNotFound   = errors.New("vendor not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// ErrSlotUnavailable: the requested slot is outside the vendor's bookable
	// schedule. ErrSlotTaken: the slot exists but another active booking holds it.
	ErrSlotUnavailable = errors.New("time slot is not available for this vendor")
	ErrSlotTaken       = errors.New("time slot is already booked")

	ErrInvalidTransition = errors.New("invalid booking state transition")
	ErrAlreadySettled    = errors.New("booking is already settled")
	ErrNotRefundable     = errors.New("booking payment is not refundable")

	ErrMinRedemption      = errors.New("minimum 100 points required for redemption")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")

	ErrPromoExhausted = errors.New("promo code usage limit exceeded")
	ErrPromoUserLimit = errors.New("promo code already used by this customer")

	ErrDealNotFound       = errors.New("flash deal not found")
	ErrDealWindowInvalid  = errors.New("deal end time must be after start time")
	ErrDealPricingInvalid = errors.New("discounted price must be less than original price")
	ErrDealSlotsInvalid   = errors.New("deal must offer at least one slot")

	ErrInvalidPayoutAmount = errors.New("payout amount exceeds pending balance")
)

// Round2 rounds a monetary amount to the currency's minor unit.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// runInTransaction wraps fn in a database transaction. A nil db executes fn
// directly, which lets unit tests drive services against mock repositories.
func runInTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
