package models

import "time"

type TransactionType string

const (
	TxnBooking        TransactionType = "booking"
	TxnCommission     TransactionType = "commission"
	TxnSubscription   TransactionType = "subscription"
	TxnPremiumListing TransactionType = "premium_listing"
	TxnPayout         TransactionType = "payout"
	TxnRefund         TransactionType = "refund"
)

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnCancelled TransactionStatus = "cancelled"
)

// Transaction is an append-only financial ledger entry. Amounts are signed:
// positive for inflows, negative for refunds and payouts. Reversals are new
// entries, never edits.
type Transaction struct {
	ID               string            `gorm:"primaryKey" json:"id"`
	Type             TransactionType   `gorm:"type:varchar(20);index;not null" json:"type"`
	BookingID        string            `gorm:"index" json:"booking_id,omitempty"`
	VendorID         string            `gorm:"index" json:"vendor_id,omitempty"`
	CustomerID       string            `json:"customer_id,omitempty"`
	Amount           float64           `gorm:"not null" json:"amount"`
	CommissionAmount float64           `json:"commission_amount"`
	Description      string            `json:"description"`
	Status           TransactionStatus `gorm:"type:varchar(20);not null" json:"status"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	ProcessedAt      *time.Time        `json:"processed_at,omitempty"`
}
