package models

import "time"

// Customer is the local profile cache for an identity-provider user.
// Credentials live with the auth provider; only booking-relevant fields
// are kept here, synced via user.* events.
type Customer struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	LoyaltyPoints   int       `gorm:"not null;default:0" json:"loyalty_points"`
	TotalBookings   int       `gorm:"not null;default:0" json:"total_bookings"`
	IsFirstTimeUser bool      `gorm:"not null;default:true" json:"is_first_time_user"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
