package models

import "time"

type LoyaltyTransactionType string

const (
	PointsEarned   LoyaltyTransactionType = "earned"
	PointsRedeemed LoyaltyTransactionType = "redeemed"
	PointsExpired  LoyaltyTransactionType = "expired"
)

// LoyaltyTransaction is an append-only points ledger entry. Points are signed:
// positive for earned, negative for redeemed/expired. ExpiresAt is set only on
// earned entries; ExpiryProcessed marks earned entries already offset by an
// expired entry so the sweep never double-applies.
type LoyaltyTransaction struct {
	ID              string                 `gorm:"primaryKey" json:"id"`
	CustomerID      string                 `gorm:"index;not null" json:"customer_id"`
	Type            LoyaltyTransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Points          int                    `gorm:"not null" json:"points"`
	BookingID       string                 `json:"booking_id,omitempty"`
	Description     string                 `json:"description"`
	ExpiresAt       *time.Time             `gorm:"index" json:"expires_at,omitempty"`
	ExpiryProcessed bool                   `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time              `json:"created_at"`
}
