package repository

import (
	"context"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoyaltyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.LoyaltyTransaction) error
	FindByCustomer(ctx context.Context, customerID string) ([]models.LoyaltyTransaction, error)
	// SumAvailable replays the ledger: earned entries still inside their
	// expiry window plus redeemed entries (negative).
	SumAvailable(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error)
	FindExpirable(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.LoyaltyTransaction, error)
	MarkExpiryProcessed(ctx context.Context, tx *gorm.DB, id string) error
	GetDB() *gorm.DB
}

type loyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *loyaltyRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.LoyaltyTransaction) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *loyaltyRepository) FindByCustomer(ctx context.Context, customerID string) ([]models.LoyaltyTransaction, error) {
	var entries []models.LoyaltyTransaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *loyaltyRepository) SumAvailable(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error) {
	var total *int
	err := tx.WithContext(ctx).
		Model(&models.LoyaltyTransaction{}).
		Select("SUM(points)").
		Where("customer_id = ?", customerID).
		Where("(type = ? AND expires_at > ?) OR type = ?",
			models.PointsEarned, now, models.PointsRedeemed).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

// FindExpirable returns earned entries past their expiry window that have not
// been offset yet, locked so a concurrent sweep cannot pick them up too.
func (r *loyaltyRepository) FindExpirable(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.LoyaltyTransaction, error) {
	var entries []models.LoyaltyTransaction
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("type = ? AND expiry_processed = false AND expires_at < ?",
			models.PointsEarned, now).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *loyaltyRepository) MarkExpiryProcessed(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).
		Model(&models.LoyaltyTransaction{}).
		Where("id = ?", id).
		Update("expiry_processed", true).Error
}
