package repository

import (
	"context"
	"strings"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *models.PromoCode) error
	FindByID(ctx context.Context, id string) (*models.PromoCode, error)
	FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error)
	FindActive(ctx context.Context, now time.Time) ([]models.PromoCode, error)
	// IncrementUsage bumps used_count only while the global cap holds;
	// returns false when the cap was already reached.
	IncrementUsage(ctx context.Context, tx *gorm.DB, promoID string) (bool, error)
	CountUsageByCustomer(ctx context.Context, tx *gorm.DB, promoID, customerID string) (int64, error)
	RecordUsage(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error
	Deactivate(ctx context.Context, id string) error
	GetDB() *gorm.DB
}

type promoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *promoRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	promo.Code = strings.ToUpper(promo.Code)
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *promoRepository) FindByID(ctx context.Context, id string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.WithContext(ctx).First(&promo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

// FindActiveByCode looks a code up case-insensitively among active codes.
func (r *promoRepository) FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = true", strings.ToUpper(code)).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoRepository) FindActive(ctx context.Context, now time.Time) ([]models.PromoCode, error) {
	var promos []models.PromoCode
	err := r.db.WithContext(ctx).
		Where("is_active = true AND start_date <= ? AND end_date > ?", now, now).
		Order("start_date DESC").
		Find(&promos).Error
	if err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *promoRepository) IncrementUsage(ctx context.Context, tx *gorm.DB, promoID string) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.PromoCode{}).
		Where("id = ? AND used_count < usage_limit", promoID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *promoRepository) CountUsageByCustomer(ctx context.Context, tx *gorm.DB, promoID, customerID string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.PromoUsage{}).
		Where("promo_code_id = ? AND customer_id = ?", promoID, customerID).
		Count(&count).Error
	return count, err
}

func (r *promoRepository) RecordUsage(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error {
	return tx.WithContext(ctx).Create(usage).Error
}

func (r *promoRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.PromoCode{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
