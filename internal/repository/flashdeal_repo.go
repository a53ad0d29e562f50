package repository

import (
	"context"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlashDealRepository interface {
	Create(ctx context.Context, deal *models.FlashDeal) error
	FindByID(ctx context.Context, id string) (*models.FlashDeal, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.FlashDeal, error)
	// IncrementBookedSlots claims one slot; the conditional update is the
	// hard guarantee that booked_slots never exceeds total_slots.
	IncrementBookedSlots(ctx context.Context, tx *gorm.DB, dealID string) (bool, error)
	FindActive(ctx context.Context, now time.Time, vendorID string) ([]models.FlashDeal, error)
	FindUpcoming(ctx context.Context, now time.Time, vendorID string, limit int) ([]models.FlashDeal, error)
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
	SetActive(ctx context.Context, id string, active bool) error
	GetDB() *gorm.DB
}

type FlashDealBookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.FlashDealBooking) error
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.FlashDealBooking, error)
	ExistsForCustomer(ctx context.Context, tx *gorm.DB, dealID, customerID string) (bool, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.FlashDealBookingStatus, redeemedAt *time.Time) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	FindByCustomer(ctx context.Context, customerID string) ([]models.FlashDealBooking, error)
}

type flashDealRepository struct {
	db *gorm.DB
}

func NewFlashDealRepository(db *gorm.DB) FlashDealRepository {
	return &flashDealRepository{db: db}
}

func (r *flashDealRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *flashDealRepository) Create(ctx context.Context, deal *models.FlashDeal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *flashDealRepository) FindByID(ctx context.Context, id string) (*models.FlashDeal, error) {
	var deal models.FlashDeal
	if err := r.db.WithContext(ctx).First(&deal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *flashDealRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.FlashDeal, error) {
	var deal models.FlashDeal
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&deal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *flashDealRepository) IncrementBookedSlots(ctx context.Context, tx *gorm.DB, dealID string) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.FlashDeal{}).
		Where("id = ? AND booked_slots < total_slots", dealID).
		Update("booked_slots", gorm.Expr("booked_slots + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *flashDealRepository) FindActive(ctx context.Context, now time.Time, vendorID string) ([]models.FlashDeal, error) {
	var deals []models.FlashDeal
	q := r.db.WithContext(ctx).
		Where("is_active = true AND start_time <= ? AND end_time > ?", now, now).
		Order("start_time ASC")
	if vendorID != "" {
		q = q.Where("vendor_id = ?", vendorID)
	}
	if err := q.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *flashDealRepository) FindUpcoming(ctx context.Context, now time.Time, vendorID string, limit int) ([]models.FlashDeal, error) {
	var deals []models.FlashDeal
	q := r.db.WithContext(ctx).
		Where("is_active = true AND start_time > ?", now).
		Order("start_time ASC")
	if vendorID != "" {
		q = q.Where("vendor_id = ?", vendorID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// DeactivateEnded is a set-based update, safe to re-run.
func (r *flashDealRepository) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FlashDeal{}).
		Where("is_active = true AND end_time <= ?", now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *flashDealRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.FlashDeal{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

type flashDealBookingRepository struct {
	db *gorm.DB
}

func NewFlashDealBookingRepository(db *gorm.DB) FlashDealBookingRepository {
	return &flashDealBookingRepository{db: db}
}

func (r *flashDealBookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.FlashDealBooking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *flashDealBookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.FlashDealBooking, error) {
	var booking models.FlashDealBooking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *flashDealBookingRepository) ExistsForCustomer(ctx context.Context, tx *gorm.DB, dealID, customerID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.FlashDealBooking{}).
		Where("deal_id = ? AND customer_id = ?", dealID, customerID).
		Count(&count).Error
	return count > 0, err
}

func (r *flashDealBookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.FlashDealBookingStatus, redeemedAt *time.Time) error {
	fields := map[string]any{"status": status}
	if redeemedAt != nil {
		fields["redeemed_at"] = *redeemedAt
	}
	return tx.WithContext(ctx).
		Model(&models.FlashDealBooking{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *flashDealBookingRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FlashDealBooking{}).
		Where("status = ? AND expires_at <= ?", models.FlashBooked, now).
		Update("status", models.FlashExpired)
	return res.RowsAffected, res.Error
}

func (r *flashDealBookingRepository) FindByCustomer(ctx context.Context, customerID string) ([]models.FlashDealBooking, error) {
	var bookings []models.FlashDealBooking
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("booked_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
