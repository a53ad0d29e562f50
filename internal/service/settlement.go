package service

import (
	"context"
	"fmt"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EarningsSummary aggregates a vendor's ledger over an optional period.
type EarningsSummary struct {
	VendorID        string  `json:"vendor_id"`
	TotalBookings   int     `json:"total_bookings"`
	GrossRevenue    float64 `json:"gross_revenue"`
	TotalCommission float64 `json:"total_commission"`
	NetEarnings     float64 `json:"net_earnings"`
	TotalRefunds    float64 `json:"total_refunds"`
	PendingPayouts  float64 `json:"pending_payouts"`
}

// RevenueSummary aggregates platform-side income over an optional period.
type RevenueSummary struct {
	CommissionRevenue  float64 `json:"commission_revenue"`
	RefundedCommission float64 `json:"refunded_commission"`
	NetRevenue         float64 `json:"net_revenue"`
	TransactionCount   int     `json:"transaction_count"`
}

type SettlementService interface {
	Settle(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	ProcessRefund(ctx context.Context, tx *gorm.DB, booking *models.Booking, amount float64, reason string) error
	ProcessPayout(ctx context.Context, vendorID string, amount float64) (*models.Transaction, error)
	VendorEarnings(ctx context.Context, vendorID string, start, end *time.Time) (*EarningsSummary, error)
	VendorTransactions(ctx context.Context, vendorID string, types []models.TransactionType) ([]models.Transaction, error)
	PlatformRevenue(ctx context.Context, start, end *time.Time) (*RevenueSummary, error)
}

type settlementService struct {
	vendorRepo  repository.VendorRepository
	txnRepo     repository.TransactionRepository
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
}

func NewSettlementService(
	vendorRepo repository.VendorRepository,
	txnRepo repository.TransactionRepository,
	bookingRepo repository.BookingRepository,
	publisher EventPublisher,
) SettlementService {
	return &settlementService{
		vendorRepo:  vendorRepo,
		txnRepo:     txnRepo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
	}
}

// Settle splits a paid booking between the vendor and the platform: computes
// commission at the vendor's current rate, appends the commission ledger entry
// and credits the vendor's balances. The booking struct is mutated in place;
// persisting it is the caller's responsibility, inside the same transaction.
func (s *settlementService) Settle(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if booking.PaymentStatus == models.PaymentPaid {
		return ErrAlreadySettled
	}

	vendor, err := s.vendorRepo.FindByIDForUpdate(ctx, tx, booking.VendorID)
	if err != nil {
		return fmt.Errorf("lock vendor: %w", err)
	}

	commission := Round2(booking.FinalPrice * vendor.CommissionRate)
	earnings := Round2(booking.FinalPrice - commission)

	now := time.Now()
	txn := &models.Transaction{
		ID:               uuid.NewString(),
		Type:             models.TxnCommission,
		BookingID:        booking.ID,
		VendorID:         vendor.ID,
		CustomerID:       booking.CustomerID,
		Amount:           booking.FinalPrice,
		CommissionAmount: commission,
		Description:      fmt.Sprintf("Commission on booking %s", booking.ID),
		Status:           models.TxnCompleted,
		ProcessedAt:      &now,
	}
	if err := s.txnRepo.Create(ctx, tx, txn); err != nil {
		return fmt.Errorf("record commission: %w", err)
	}

	if err := s.vendorRepo.Credit(ctx, tx, vendor.ID, earnings); err != nil {
		return fmt.Errorf("credit vendor: %w", err)
	}

	booking.CommissionAmount = commission
	booking.VendorEarnings = earnings
	booking.PaymentStatus = models.PaymentPaid
	return nil
}

// ProcessRefund reverses a settled booking. The commission refund is derived
// from the booking's effective rate at settlement time, so refunds stay exact
// even if the vendor's rate has changed since.
func (s *settlementService) ProcessRefund(ctx context.Context, tx *gorm.DB, booking *models.Booking, amount float64, reason string) error {
	if booking.PaymentStatus != models.PaymentPaid {
		return ErrNotRefundable
	}
	if amount <= 0 || amount > booking.FinalPrice {
		amount = booking.FinalPrice
	}

	rate := 0.0
	if booking.FinalPrice > 0 {
		rate = booking.CommissionAmount / booking.FinalPrice
	}
	commissionRefund := Round2(amount * rate)
	vendorRefund := Round2(amount - commissionRefund)

	now := time.Now()
	txn := &models.Transaction{
		ID:               uuid.NewString(),
		Type:             models.TxnRefund,
		BookingID:        booking.ID,
		VendorID:         booking.VendorID,
		CustomerID:       booking.CustomerID,
		Amount:           -amount,
		CommissionAmount: -commissionRefund,
		Description:      fmt.Sprintf("Refund on booking %s: %s", booking.ID, reason),
		Status:           models.TxnCompleted,
		ProcessedAt:      &now,
	}
	if err := s.txnRepo.Create(ctx, tx, txn); err != nil {
		return fmt.Errorf("record refund: %w", err)
	}

	if vendorRefund > 0 {
		if err := s.vendorRepo.Debit(ctx, tx, booking.VendorID, vendorRefund); err != nil {
			return fmt.Errorf("debit vendor: %w", err)
		}
	}

	booking.PaymentStatus = models.PaymentRefunded
	return nil
}

// ProcessPayout moves pending payouts off the vendor's balance and requests
// the transfer downstream. The amount must not exceed the current balance.
func (s *settlementService) ProcessPayout(ctx context.Context, vendorID string, amount float64) (*models.Transaction, error) {
	var txn *models.Transaction
	err := runInTransaction(ctx, s.vendorRepo.GetDB(), func(tx *gorm.DB) error {
		vendor, err := s.vendorRepo.FindByIDForUpdate(ctx, tx, vendorID)
		if err != nil {
			return ErrVendorNotFound
		}
		if amount <= 0 || amount > vendor.PendingPayouts {
			return ErrInvalidPayoutAmount
		}

		txn = &models.Transaction{
			ID:          uuid.NewString(),
			Type:        models.TxnPayout,
			VendorID:    vendorID,
			Amount:      -amount,
			Description: fmt.Sprintf("Payout to vendor %s", vendorID),
			Status:      models.TxnPending,
		}
		if err := s.txnRepo.Create(ctx, tx, txn); err != nil {
			return fmt.Errorf("record payout: %w", err)
		}
		return s.vendorRepo.DebitPendingPayouts(ctx, tx, vendorID, amount)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventPayoutRequested, map[string]any{
		"transaction_id": txn.ID,
		"vendor_id":      vendorID,
		"amount":         amount,
	})
	return txn, nil
}

func (s *settlementService) VendorEarnings(ctx context.Context, vendorID string, start, end *time.Time) (*EarningsSummary, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, ErrVendorNotFound
	}

	bookings, err := s.bookingRepo.FindByVendorCreatedBetween(ctx, vendorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load vendor bookings: %w", err)
	}

	summary := &EarningsSummary{VendorID: vendorID}
	for _, b := range bookings {
		switch b.PaymentStatus {
		case models.PaymentPaid:
			summary.TotalBookings++
			summary.GrossRevenue += b.FinalPrice
			summary.TotalCommission += b.CommissionAmount
			summary.NetEarnings += b.VendorEarnings
		case models.PaymentRefunded:
			summary.TotalRefunds += b.FinalPrice
		}
	}
	summary.GrossRevenue = Round2(summary.GrossRevenue)
	summary.TotalCommission = Round2(summary.TotalCommission)
	summary.NetEarnings = Round2(summary.NetEarnings)
	summary.TotalRefunds = Round2(summary.TotalRefunds)
	summary.PendingPayouts = vendor.PendingPayouts
	return summary, nil
}

// VendorTransactions lists a vendor's ledger entries, newest first, optionally
// filtered by transaction type.
func (s *settlementService) VendorTransactions(ctx context.Context, vendorID string, types []models.TransactionType) ([]models.Transaction, error) {
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		return nil, ErrVendorNotFound
	}
	txns, err := s.txnRepo.FindByVendor(ctx, vendorID, types)
	if err != nil {
		return nil, fmt.Errorf("load vendor ledger: %w", err)
	}
	return txns, nil
}

// PlatformRevenue sums commission income minus commission refunded over the
// period. Both come off the transaction ledger, never off booking rows.
func (s *settlementService) PlatformRevenue(ctx context.Context, start, end *time.Time) (*RevenueSummary, error) {
	commissions, err := s.txnRepo.FindByTypeBetween(ctx, models.TxnCommission, start, end)
	if err != nil {
		return nil, fmt.Errorf("load commission ledger: %w", err)
	}
	refunds, err := s.txnRepo.FindByTypeBetween(ctx, models.TxnRefund, start, end)
	if err != nil {
		return nil, fmt.Errorf("load refund ledger: %w", err)
	}

	summary := &RevenueSummary{}
	for _, t := range commissions {
		summary.CommissionRevenue += t.CommissionAmount
		summary.TransactionCount++
	}
	for _, t := range refunds {
		summary.RefundedCommission += -t.CommissionAmount
		summary.TransactionCount++
	}
	summary.CommissionRevenue = Round2(summary.CommissionRevenue)
	summary.RefundedCommission = Round2(summary.RefundedCommission)
	summary.NetRevenue = Round2(summary.CommissionRevenue - summary.RefundedCommission)
	return summary, nil
}
