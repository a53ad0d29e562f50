package service

import (
	"context"
	"time"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/gorm"
)

// Function-field mocks. A nil GetDB makes runInTransaction execute the body
// directly, so transactional services run against these without a database.

type mockVendorRepo struct {
	findByIDFn            func(ctx context.Context, id string) (*models.Vendor, error)
	creditFn              func(ctx context.Context, tx *gorm.DB, vendorID string, earnings float64) error
	debitFn               func(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error
	debitPendingPayoutsFn func(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error
}

func (m *mockVendorRepo) Create(ctx context.Context, vendor *models.Vendor) error { return nil }
func (m *mockVendorRepo) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockVendorRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Vendor, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockVendorRepo) Credit(ctx context.Context, tx *gorm.DB, vendorID string, earnings float64) error {
	if m.creditFn != nil {
		return m.creditFn(ctx, tx, vendorID, earnings)
	}
	return nil
}
func (m *mockVendorRepo) Debit(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error {
	if m.debitFn != nil {
		return m.debitFn(ctx, tx, vendorID, amount)
	}
	return nil
}
func (m *mockVendorRepo) DebitPendingPayouts(ctx context.Context, tx *gorm.DB, vendorID string, amount float64) error {
	if m.debitPendingPayoutsFn != nil {
		return m.debitPendingPayoutsFn(ctx, tx, vendorID, amount)
	}
	return nil
}
func (m *mockVendorRepo) GetDB() *gorm.DB { return nil }

type mockCustomerRepo struct {
	findByIDFn         func(ctx context.Context, id string) (*models.Customer, error)
	addLoyaltyPointsFn func(ctx context.Context, tx *gorm.DB, customerID string, delta int) error
	recordBookingFn    func(ctx context.Context, tx *gorm.DB, customerID string) error
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCustomerRepo) Upsert(ctx context.Context, customer *models.Customer) error { return nil }
func (m *mockCustomerRepo) AddLoyaltyPoints(ctx context.Context, tx *gorm.DB, customerID string, delta int) error {
	if m.addLoyaltyPointsFn != nil {
		return m.addLoyaltyPointsFn(ctx, tx, customerID, delta)
	}
	return nil
}
func (m *mockCustomerRepo) RecordBooking(ctx context.Context, tx *gorm.DB, customerID string) error {
	if m.recordBookingFn != nil {
		return m.recordBookingFn(ctx, tx, customerID)
	}
	return nil
}

type mockBookingRepo struct {
	createFn       func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn     func(ctx context.Context, id string) (*models.Booking, error)
	saveFn         func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	bookedSlotsFn  func(ctx context.Context, tx *gorm.DB, vendorID string, date time.Time) ([]string, error)
	findCreatedFn  func(ctx context.Context, vendorID string, start, end *time.Time) ([]models.Booking, error)
	findByVendorFn func(ctx context.Context, vendorID string, status *models.BookingStatus, date *time.Time) ([]models.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, booking)
	}
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, booking)
	}
	return nil
}
func (m *mockBookingRepo) BookedSlots(ctx context.Context, tx *gorm.DB, vendorID string, date time.Time) ([]string, error) {
	if m.bookedSlotsFn != nil {
		return m.bookedSlotsFn(ctx, tx, vendorID, date)
	}
	return nil, nil
}
func (m *mockBookingRepo) FindByCustomer(ctx context.Context, customerID string, status *models.BookingStatus, limit int) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindByVendor(ctx context.Context, vendorID string, status *models.BookingStatus, date *time.Time) ([]models.Booking, error) {
	if m.findByVendorFn != nil {
		return m.findByVendorFn(ctx, vendorID, status, date)
	}
	return nil, nil
}
func (m *mockBookingRepo) FindByVendorCreatedBetween(ctx context.Context, vendorID string, start, end *time.Time) ([]models.Booking, error) {
	if m.findCreatedFn != nil {
		return m.findCreatedFn(ctx, vendorID, start, end)
	}
	return nil, nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

type mockTransactionRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	findByVendorFn      func(ctx context.Context, vendorID string, types []models.TransactionType) ([]models.Transaction, error)
	findByTypeBetweenFn func(ctx context.Context, txnType models.TransactionType, start, end *time.Time) ([]models.Transaction, error)
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, txn)
	}
	return nil
}
func (m *mockTransactionRepo) FindByVendor(ctx context.Context, vendorID string, types []models.TransactionType) ([]models.Transaction, error) {
	if m.findByVendorFn != nil {
		return m.findByVendorFn(ctx, vendorID, types)
	}
	return nil, nil
}
func (m *mockTransactionRepo) FindByTypeBetween(ctx context.Context, txnType models.TransactionType, start, end *time.Time) ([]models.Transaction, error) {
	if m.findByTypeBetweenFn != nil {
		return m.findByTypeBetweenFn(ctx, txnType, start, end)
	}
	return nil, nil
}

type mockLoyaltyRepo struct {
	createFn              func(ctx context.Context, tx *gorm.DB, entry *models.LoyaltyTransaction) error
	sumAvailableFn        func(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error)
	findExpirableFn       func(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.LoyaltyTransaction, error)
	markExpiryProcessedFn func(ctx context.Context, tx *gorm.DB, id string) error
	findByCustomerFn      func(ctx context.Context, customerID string) ([]models.LoyaltyTransaction, error)
}

func (m *mockLoyaltyRepo) Create(ctx context.Context, tx *gorm.DB, entry *models.LoyaltyTransaction) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, entry)
	}
	return nil
}
func (m *mockLoyaltyRepo) FindByCustomer(ctx context.Context, customerID string) ([]models.LoyaltyTransaction, error) {
	if m.findByCustomerFn != nil {
		return m.findByCustomerFn(ctx, customerID)
	}
	return nil, nil
}
func (m *mockLoyaltyRepo) SumAvailable(ctx context.Context, tx *gorm.DB, customerID string, now time.Time) (int, error) {
	if m.sumAvailableFn != nil {
		return m.sumAvailableFn(ctx, tx, customerID, now)
	}
	return 0, nil
}
func (m *mockLoyaltyRepo) FindExpirable(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.LoyaltyTransaction, error) {
	if m.findExpirableFn != nil {
		return m.findExpirableFn(ctx, tx, now)
	}
	return nil, nil
}
func (m *mockLoyaltyRepo) MarkExpiryProcessed(ctx context.Context, tx *gorm.DB, id string) error {
	if m.markExpiryProcessedFn != nil {
		return m.markExpiryProcessedFn(ctx, tx, id)
	}
	return nil
}
func (m *mockLoyaltyRepo) GetDB() *gorm.DB { return nil }

type mockPromoRepo struct {
	findByIDFn             func(ctx context.Context, id string) (*models.PromoCode, error)
	findActiveByCodeFn     func(ctx context.Context, code string) (*models.PromoCode, error)
	incrementUsageFn       func(ctx context.Context, tx *gorm.DB, promoID string) (bool, error)
	countUsageByCustomerFn func(ctx context.Context, tx *gorm.DB, promoID, customerID string) (int64, error)
	recordUsageFn          func(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error
	createFn               func(ctx context.Context, promo *models.PromoCode) error
}

func (m *mockPromoRepo) Create(ctx context.Context, promo *models.PromoCode) error {
	if m.createFn != nil {
		return m.createFn(ctx, promo)
	}
	return nil
}
func (m *mockPromoRepo) FindByID(ctx context.Context, id string) (*models.PromoCode, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPromoRepo) FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	return m.findActiveByCodeFn(ctx, code)
}
func (m *mockPromoRepo) FindActive(ctx context.Context, now time.Time) ([]models.PromoCode, error) {
	return nil, nil
}
func (m *mockPromoRepo) IncrementUsage(ctx context.Context, tx *gorm.DB, promoID string) (bool, error) {
	if m.incrementUsageFn != nil {
		return m.incrementUsageFn(ctx, tx, promoID)
	}
	return true, nil
}
func (m *mockPromoRepo) CountUsageByCustomer(ctx context.Context, tx *gorm.DB, promoID, customerID string) (int64, error) {
	if m.countUsageByCustomerFn != nil {
		return m.countUsageByCustomerFn(ctx, tx, promoID, customerID)
	}
	return 0, nil
}
func (m *mockPromoRepo) RecordUsage(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error {
	if m.recordUsageFn != nil {
		return m.recordUsageFn(ctx, tx, usage)
	}
	return nil
}
func (m *mockPromoRepo) Deactivate(ctx context.Context, id string) error { return nil }
func (m *mockPromoRepo) GetDB() *gorm.DB                                 { return nil }

type mockFlashDealRepo struct {
	findByIDFn             func(ctx context.Context, id string) (*models.FlashDeal, error)
	incrementBookedSlotsFn func(ctx context.Context, tx *gorm.DB, dealID string) (bool, error)
	createFn               func(ctx context.Context, deal *models.FlashDeal) error
	deactivateEndedFn      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockFlashDealRepo) Create(ctx context.Context, deal *models.FlashDeal) error {
	if m.createFn != nil {
		return m.createFn(ctx, deal)
	}
	return nil
}
func (m *mockFlashDealRepo) FindByID(ctx context.Context, id string) (*models.FlashDeal, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockFlashDealRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.FlashDeal, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockFlashDealRepo) IncrementBookedSlots(ctx context.Context, tx *gorm.DB, dealID string) (bool, error) {
	if m.incrementBookedSlotsFn != nil {
		return m.incrementBookedSlotsFn(ctx, tx, dealID)
	}
	return true, nil
}
func (m *mockFlashDealRepo) FindActive(ctx context.Context, now time.Time, vendorID string) ([]models.FlashDeal, error) {
	return nil, nil
}
func (m *mockFlashDealRepo) FindUpcoming(ctx context.Context, now time.Time, vendorID string, limit int) ([]models.FlashDeal, error) {
	return nil, nil
}
func (m *mockFlashDealRepo) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	if m.deactivateEndedFn != nil {
		return m.deactivateEndedFn(ctx, now)
	}
	return 0, nil
}
func (m *mockFlashDealRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}
func (m *mockFlashDealRepo) GetDB() *gorm.DB { return nil }

type mockFlashDealBookingRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, booking *models.FlashDealBooking) error
	findByIDFn          func(ctx context.Context, id string) (*models.FlashDealBooking, error)
	existsForCustomerFn func(ctx context.Context, tx *gorm.DB, dealID, customerID string) (bool, error)
	updateStatusFn      func(ctx context.Context, tx *gorm.DB, id string, status models.FlashDealBookingStatus, redeemedAt *time.Time) error
	expireStaleFn       func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockFlashDealBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.FlashDealBooking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, booking)
	}
	return nil
}
func (m *mockFlashDealBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.FlashDealBooking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockFlashDealBookingRepo) ExistsForCustomer(ctx context.Context, tx *gorm.DB, dealID, customerID string) (bool, error) {
	if m.existsForCustomerFn != nil {
		return m.existsForCustomerFn(ctx, tx, dealID, customerID)
	}
	return false, nil
}
func (m *mockFlashDealBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.FlashDealBookingStatus, redeemedAt *time.Time) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, id, status, redeemedAt)
	}
	return nil
}
func (m *mockFlashDealBookingRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	if m.expireStaleFn != nil {
		return m.expireStaleFn(ctx, now)
	}
	return 0, nil
}
func (m *mockFlashDealBookingRepo) FindByCustomer(ctx context.Context, customerID string) ([]models.FlashDealBooking, error) {
	return nil, nil
}

// mockPublisher records published events in order.
type mockPublisher struct {
	events []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.events = append(m.events, routingKey)
	return nil
}
