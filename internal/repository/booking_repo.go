package repository

import (
	"context"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	BookedSlots(ctx context.Context, tx *gorm.DB, vendorID string, date time.Time) ([]string, error)
	FindByCustomer(ctx context.Context, customerID string, status *models.BookingStatus, limit int) ([]models.Booking, error)
	FindByVendor(ctx context.Context, vendorID string, status *models.BookingStatus, date *time.Time) ([]models.Booking, error)
	FindByVendorCreatedBetween(ctx context.Context, vendorID string, start, end *time.Time) ([]models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the booking row for the duration of the transaction,
// serializing concurrent lifecycle transitions on the same booking.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}

// BookedSlots returns the time slots held by active bookings for a vendor on
// a calendar day. Cancelled, completed and no-show bookings free the slot.
func (r *bookingRepository) BookedSlots(ctx context.Context, tx *gorm.DB, vendorID string, date time.Time) ([]string, error) {
	var slots []string
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("vendor_id = ? AND date = ? AND status IN ?",
			vendorID, date.Format("2006-01-02"), models.ActiveBookingStatuses).
		Pluck("time_slot", &slots).Error
	return slots, err
}

func (r *bookingRepository) FindByCustomer(ctx context.Context, customerID string, status *models.BookingStatus, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByVendor(ctx context.Context, vendorID string, status *models.BookingStatus, date *time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("date DESC, time_slot DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if date != nil {
		q = q.Where("date = ?", date.Format("2006-01-02"))
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByVendorCreatedBetween(ctx context.Context, vendorID string, start, end *time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC")
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
