package models

import "time"

type FlashDeal struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	Title              string    `gorm:"not null" json:"title"`
	Description        string    `json:"description"`
	VendorID           string    `gorm:"index;not null" json:"vendor_id"`
	ServiceID          string    `gorm:"not null" json:"service_id"`
	OriginalPrice      float64   `gorm:"not null" json:"original_price"`
	DiscountedPrice    float64   `gorm:"not null" json:"discounted_price"`
	DiscountPercentage int       `gorm:"not null" json:"discount_percentage"` // derived, rounded
	StartTime          time.Time `gorm:"not null" json:"start_time"`
	EndTime            time.Time `gorm:"not null" json:"end_time"`
	TotalSlots         int       `gorm:"not null" json:"total_slots"`
	BookedSlots        int       `gorm:"not null;default:0" json:"booked_slots"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

type FlashDealBookingStatus string

const (
	FlashBooked   FlashDealBookingStatus = "booked"
	FlashRedeemed FlashDealBookingStatus = "redeemed"
	FlashExpired  FlashDealBookingStatus = "expired"
)

type FlashDealBooking struct {
	ID              string                 `gorm:"primaryKey" json:"id"`
	DealID          string                 `gorm:"index;not null" json:"deal_id"`
	CustomerID      string                 `gorm:"index;not null" json:"customer_id"`
	VendorID        string                 `gorm:"index;not null" json:"vendor_id"`
	ServiceID       string                 `gorm:"not null" json:"service_id"`
	OriginalPrice   float64                `gorm:"not null" json:"original_price"`
	DiscountedPrice float64                `gorm:"not null" json:"discounted_price"`
	Savings         float64                `gorm:"not null" json:"savings"`
	Status          FlashDealBookingStatus `gorm:"type:varchar(10);not null;default:'booked'" json:"status"`
	BookedAt        time.Time              `json:"booked_at"`
	ExpiresAt       time.Time              `gorm:"not null" json:"expires_at"` // deal's end time at claim time
	RedeemedAt      *time.Time             `json:"redeemed_at,omitempty"`
}
