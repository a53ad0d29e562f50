package models

import "time"

type PromoCodeType string

const (
	PromoPercentage PromoCodeType = "percentage"
	PromoFixed      PromoCodeType = "fixed"
	PromoFirstTime  PromoCodeType = "first_time"
)

type PromoCode struct {
	ID                 string        `gorm:"primaryKey" json:"id"`
	Code               string        `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	Type               PromoCodeType `gorm:"type:varchar(12);not null" json:"type"`
	Value              float64       `gorm:"not null" json:"value"`
	MinOrderValue      float64       `gorm:"not null" json:"min_order_value"`
	MaxDiscount        float64       `json:"max_discount,omitempty"` // percentage type only, 0 = uncapped
	UsageLimit         int           `gorm:"not null" json:"usage_limit"`
	UsedCount          int           `gorm:"not null;default:0" json:"used_count"`
	UserLimit          int           `gorm:"not null" json:"user_limit"`
	IsActive           bool          `gorm:"not null;default:true" json:"is_active"`
	StartDate          time.Time     `gorm:"not null" json:"start_date"`
	EndDate            time.Time     `gorm:"not null" json:"end_date"` // validity window is [start, end)
	ApplicableServices []string      `gorm:"serializer:json" json:"applicable_services"` // empty = all
	ApplicableVendors  []string      `gorm:"serializer:json" json:"applicable_vendors"`  // empty = all
	CreatedBy          string        `json:"created_by"`
	CreatedAt          time.Time     `json:"created_at"`
}

// PromoUsage records one redemption of a promo code by one customer.
// UsageOrdinal is the customer's redemption count for the code at insert time;
// the unique index on (promo_code_id, customer_id, usage_ordinal) makes
// concurrent redemptions of the same ordinal collide instead of double-counting.
type PromoUsage struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	PromoCodeID  string    `gorm:"index;not null" json:"promo_code_id"`
	CustomerID   string    `gorm:"index;not null" json:"customer_id"`
	BookingID    string    `json:"booking_id"`
	UsageOrdinal int       `gorm:"not null;default:1" json:"usage_ordinal"`
	UsedAt       time.Time `json:"used_at"`
}
