package repository

import (
	"context"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id string) (*models.Vendor, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Vendor, error)
	Credit(ctx context.Context, tx *gorm.DB, vendorID string, earnings float64) error
	Debit(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error
	DebitPendingPayouts(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error
	GetDB() *gorm.DB
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByIDForUpdate acquires a row-level lock on the vendor within the given transaction.
func (r *vendorRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Credit adds vendor earnings to both running balances atomically.
func (r *vendorRepository) Credit(ctx context.Context, tx *gorm.DB, vendorID string, earnings float64) error {
	return tx.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Updates(map[string]any{
			"total_earnings":  gorm.Expr("total_earnings + ?", earnings),
			"pending_payouts": gorm.Expr("pending_payouts + ?", earnings),
		}).Error
}

// Debit reverses earnings on refund. Pending payouts are floored at zero:
// the vendor may already have been paid out.
func (r *vendorRepository) Debit(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error {
	return tx.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Updates(map[string]any{
			"total_earnings":  gorm.Expr("total_earnings - ?", amount),
			"pending_payouts": gorm.Expr("GREATEST(pending_payouts - ?, 0)", amount),
		}).Error
}

func (r *vendorRepository) DebitPendingPayouts(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error {
	return tx.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Update("pending_payouts", gorm.Expr("GREATEST(pending_payouts - ?, 0)", amount)).Error
}
