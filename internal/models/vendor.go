package models

import "time"

// DaySchedule describes one weekday of a vendor's operating hours.
// Times are zero-padded "HH:MM" clock strings.
type DaySchedule struct {
	IsOpen     bool   `json:"is_open"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

// OperatingHours is keyed by lowercase weekday name ("monday" .. "sunday").
type OperatingHours map[string]DaySchedule

type AddOnService struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"` // minutes
}

type VendorService struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Price    float64        `json:"price"`
	Duration int            `json:"duration"` // minutes
	Category string         `json:"category"`
	IsActive bool           `json:"is_active"`
	AddOns   []AddOnService `json:"add_ons"`
}

type Vendor struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	UserID         string          `gorm:"index" json:"user_id"`
	BusinessName   string          `gorm:"not null" json:"business_name"`
	Services       []VendorService `gorm:"serializer:json" json:"services"`
	OperatingHours OperatingHours  `gorm:"serializer:json" json:"operating_hours"`
	CommissionRate float64         `gorm:"not null" json:"commission_rate"`
	TotalEarnings  float64         `gorm:"not null;default:0" json:"total_earnings"`
	PendingPayouts float64         `gorm:"not null;default:0" json:"pending_payouts"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FindService returns the vendor's service with the given id, or nil.
func (v *Vendor) FindService(serviceID string) *VendorService {
	for i := range v.Services {
		if v.Services[i].ID == serviceID {
			return &v.Services[i]
		}
	}
	return nil
}

// FindAddOn returns the add-on with the given id on a service, or nil.
func (s *VendorService) FindAddOn(addOnID string) *AddOnService {
	for i := range s.AddOns {
		if s.AddOns[i].ID == addOnID {
			return &s.AddOns[i]
		}
	}
	return nil
}
