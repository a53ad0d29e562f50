package repository

import (
	"context"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
)

// TransactionRepository is append-only: ledger entries are never updated or
// deleted, reversals are new entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	FindByVendor(ctx context.Context, vendorID string, types []models.TransactionType) ([]models.Transaction, error)
	FindByTypeBetween(ctx context.Context, txnType models.TransactionType, start, end *time.Time) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByVendor(ctx context.Context, vendorID string, types []models.TransactionType) ([]models.Transaction, error) {
	var txns []models.Transaction
	q := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC")
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) FindByTypeBetween(ctx context.Context, txnType models.TransactionType, start, end *time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	q := r.db.WithContext(ctx).
		Where("type = ?", txnType).
		Order("created_at DESC")
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}
	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
