package repository

import (
	"context"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	Upsert(ctx context.Context, customer *models.Customer) error
	AddLoyaltyPoints(ctx context.Context, tx *gorm.DB, customerID string, delta int) error
	RecordBooking(ctx context.Context, tx *gorm.DB, customerID string) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Upsert syncs a profile record from the identity provider. Booking-side
// counters are never overwritten by profile updates.
func (r *customerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "phone", "updated_at"}),
	}).Create(customer).Error
}

// AddLoyaltyPoints adjusts the cached point total, floored at zero. The
// loyalty transaction log is the source of truth; this cache is maintained in
// the same transaction as each log append.
func (r *customerRepository) AddLoyaltyPoints(ctx context.Context, tx *gorm.DB, customerID string, delta int) error {
	return tx.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Update("loyalty_points", gorm.Expr("GREATEST(loyalty_points + ?, 0)", delta)).Error
}

// RecordBooking bumps the booking counter and clears first-time status.
func (r *customerRepository) RecordBooking(ctx context.Context, tx *gorm.DB, customerID string) error {
	return tx.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"total_bookings":     gorm.Expr("total_bookings + 1"),
			"is_first_time_user": false,
		}).Error
}
