package dto

import "time"

type CreateBookingRequest struct {
	CustomerID         string   `json:"customer_id"`
	VendorID           string   `json:"vendor_id"`
	ServiceID          string   `json:"service_id"`
	AddOnServiceIDs    []string `json:"add_on_service_ids"`
	Date               string   `json:"date"` // "2006-01-02"
	TimeSlot           string   `json:"time_slot"`
	PromoCode          string   `json:"promo_code"`
	LoyaltyPointsToUse int      `json:"loyalty_points_to_use"`
	Notes              string   `json:"notes"`
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
	PaymentID     string `json:"payment_id"`
}

type CancelBookingRequest struct {
	CancelledBy string `json:"cancelled_by"` // "customer" or "vendor"
	Reason      string `json:"reason"`
}

type ValidatePromoRequest struct {
	Code       string   `json:"code"`
	CustomerID string   `json:"customer_id"`
	OrderValue float64  `json:"order_value"`
	ServiceIDs []string `json:"service_ids"`
	VendorID   string   `json:"vendor_id"`
}

type CreatePromoRequest struct {
	Code               string    `json:"code"`
	Type               string    `json:"type"`
	Value              float64   `json:"value"`
	MinOrderValue      float64   `json:"min_order_value"`
	MaxDiscount        float64   `json:"max_discount"`
	UsageLimit         int       `json:"usage_limit"`
	UserLimit          int       `json:"user_limit"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	ApplicableServices []string  `json:"applicable_services"`
	ApplicableVendors  []string  `json:"applicable_vendors"`
	CreatedBy          string    `json:"created_by"`
}

type CreateFlashDealRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VendorID        string    `json:"vendor_id"`
	ServiceID       string    `json:"service_id"`
	OriginalPrice   float64   `json:"original_price"`
	DiscountedPrice float64   `json:"discounted_price"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	TotalSlots      int       `json:"total_slots"`
}

type BookFlashDealRequest struct {
	CustomerID string `json:"customer_id"`
}

type RedeemFlashDealRequest struct {
	VendorID string `json:"vendor_id"`
}

type PayoutRequest struct {
	Amount float64 `json:"amount"`
}
