package models

import "time"

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ActiveBookingStatuses are the statuses that hold a time slot.
var ActiveBookingStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

type Booking struct {
	ID                  string        `gorm:"primaryKey" json:"id"`
	CustomerID          string        `gorm:"index;not null" json:"customer_id"`
	VendorID            string        `gorm:"index;not null" json:"vendor_id"`
	ServiceID           string        `gorm:"not null" json:"service_id"`
	AddOnServiceIDs     []string      `gorm:"serializer:json" json:"add_on_service_ids"`
	Date                time.Time     `gorm:"type:date;not null" json:"date"`
	TimeSlot            string        `gorm:"not null" json:"time_slot"` // "HH:MM"
	Duration            int           `gorm:"not null" json:"duration"`  // minutes, service + add-ons
	BasePrice           float64       `gorm:"not null" json:"base_price"`
	AddOnPrice          float64       `gorm:"not null" json:"add_on_price"`
	TotalPrice          float64       `gorm:"not null" json:"total_price"`
	DiscountAmount      float64       `gorm:"not null" json:"discount_amount"`
	FinalPrice          float64       `gorm:"not null" json:"final_price"`
	CommissionAmount    float64       `json:"commission_amount"`
	VendorEarnings      float64       `json:"vendor_earnings"`
	Status              BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus       PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod       string        `json:"payment_method,omitempty"`
	PaymentID           string        `json:"payment_id,omitempty"`
	LoyaltyPointsEarned int           `gorm:"not null;default:0" json:"loyalty_points_earned"`
	LoyaltyPointsUsed   int           `gorm:"not null;default:0" json:"loyalty_points_used"`
	PromoCode           string        `json:"promo_code,omitempty"`
	PromoDiscount       float64       `json:"promo_discount"`
	CancellationReason  string        `json:"cancellation_reason,omitempty"`
	CancellationTokens  int           `gorm:"not null;default:0" json:"cancellation_tokens"`
	CancelledBy         string        `json:"cancelled_by,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// StartTime combines the booking date and time slot into a wall-clock time.
func (b *Booking) StartTime() time.Time {
	t, err := time.Parse("15:04", b.TimeSlot)
	if err != nil {
		return b.Date
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, b.Date.Location())
}
