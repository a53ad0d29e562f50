package dto

import (
	"time"

	"github.com/glowslot/booking-platform/internal/models"
)

type BookingResponse struct {
	ID                  string               `json:"id"`
	CustomerID          string               `json:"customer_id"`
	VendorID            string               `json:"vendor_id"`
	ServiceID           string               `json:"service_id"`
	AddOnServiceIDs     []string             `json:"add_on_service_ids,omitempty"`
	Date                string               `json:"date"`
	TimeSlot            string               `json:"time_slot"`
	Duration            int                  `json:"duration"`
	BasePrice           float64              `json:"base_price"`
	AddOnPrice          float64              `json:"add_on_price"`
	TotalPrice          float64              `json:"total_price"`
	DiscountAmount      float64              `json:"discount_amount"`
	FinalPrice          float64              `json:"final_price"`
	Status              models.BookingStatus `json:"status"`
	PaymentStatus       models.PaymentStatus `json:"payment_status"`
	LoyaltyPointsEarned int                  `json:"loyalty_points_earned"`
	LoyaltyPointsUsed   int                  `json:"loyalty_points_used"`
	PromoCode           string               `json:"promo_code,omitempty"`
	PromoDiscount       float64              `json:"promo_discount,omitempty"`
	CancellationTokens  int                  `json:"cancellation_tokens,omitempty"`
	CancelledBy         string               `json:"cancelled_by,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		VendorID:            b.VendorID,
		ServiceID:           b.ServiceID,
		AddOnServiceIDs:     b.AddOnServiceIDs,
		Date:                b.Date.Format("2006-01-02"),
		TimeSlot:            b.TimeSlot,
		Duration:            b.Duration,
		BasePrice:           b.BasePrice,
		AddOnPrice:          b.AddOnPrice,
		TotalPrice:          b.TotalPrice,
		DiscountAmount:      b.DiscountAmount,
		FinalPrice:          b.FinalPrice,
		Status:              b.Status,
		PaymentStatus:       b.PaymentStatus,
		LoyaltyPointsEarned: b.LoyaltyPointsEarned,
		LoyaltyPointsUsed:   b.LoyaltyPointsUsed,
		PromoCode:           b.PromoCode,
		PromoDiscount:       b.PromoDiscount,
		CancellationTokens:  b.CancellationTokens,
		CancelledBy:         b.CancelledBy,
		CreatedAt:           b.CreatedAt,
	}
}

type LoyaltyBalanceResponse struct {
	CustomerID      string `json:"customer_id"`
	AvailablePoints int    `json:"available_points"`
}

type FlashDealResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	VendorID           string    `json:"vendor_id"`
	ServiceID          string    `json:"service_id"`
	OriginalPrice      float64   `json:"original_price"`
	DiscountedPrice    float64   `json:"discounted_price"`
	DiscountPercentage int       `json:"discount_percentage"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	SlotsRemaining     int       `json:"slots_remaining"`
	IsActive           bool      `json:"is_active"`
}

func ToFlashDealResponse(d *models.FlashDeal) FlashDealResponse {
	return FlashDealResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Description:        d.Description,
		VendorID:           d.VendorID,
		ServiceID:          d.ServiceID,
		OriginalPrice:      d.OriginalPrice,
		DiscountedPrice:    d.DiscountedPrice,
		DiscountPercentage: d.DiscountPercentage,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		SlotsRemaining:     d.TotalSlots - d.BookedSlots,
		IsActive:           d.IsActive,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
