package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glowslot/booking-platform/internal/repository"
)

// slotInterval is the fixed cadence at which bookable start times are offered.
const slotInterval = 30 // minutes

type OperatingWindow struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	IsOpen bool   `json:"is_open"`
}

type Availability struct {
	AvailableSlots []string        `json:"available_slots"`
	BookedSlots    []string        `json:"booked_slots"`
	OperatingHours OperatingWindow `json:"operating_hours"`
}

type AvailabilityService interface {
	GetAvailability(ctx context.Context, vendorID string, date time.Time, serviceDuration int) (*Availability, error)
}

type availabilityService struct {
	vendorRepo  repository.VendorRepository
	bookingRepo repository.BookingRepository
}

func NewAvailabilityService(vendorRepo repository.VendorRepository, bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{vendorRepo: vendorRepo, bookingRepo: bookingRepo}
}

func (s *availabilityService) GetAvailability(ctx context.Context, vendorID string, date time.Time, serviceDuration int) (*Availability, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, ErrVendorNotFound
	}

	day := strings.ToLower(date.Weekday().String())
	schedule, ok := vendor.OperatingHours[day]
	if !ok || !schedule.IsOpen {
		return &Availability{
			AvailableSlots: []string{},
			BookedSlots:    []string{},
			OperatingHours: OperatingWindow{IsOpen: false},
		}, nil
	}

	booked, err := s.bookingRepo.BookedSlots(ctx, s.bookingRepo.GetDB(), vendorID, date)
	if err != nil {
		return nil, fmt.Errorf("query booked slots: %w", err)
	}

	all := generateTimeSlots(schedule.OpenTime, schedule.CloseTime, serviceDuration, schedule.BreakStart, schedule.BreakEnd)

	available := make([]string, 0, len(all))
	for _, slot := range all {
		if !containsString(booked, slot) {
			available = append(available, slot)
		}
	}

	return &Availability{
		AvailableSlots: available,
		BookedSlots:    booked,
		OperatingHours: OperatingWindow{Start: schedule.OpenTime, End: schedule.CloseTime, IsOpen: true},
	}, nil
}

// generateTimeSlots produces every bookable "HH:MM" start time between open
// and close at the fixed cadence, such that the full service still fits before
// closing. Slots starting inside the break window are excluded. A service
// longer than the open window yields an empty list, not an error.
func generateTimeSlots(openTime, closeTime string, serviceDuration int, breakStart, breakEnd string) []string {
	open, err := parseClock(openTime)
	if err != nil {
		return []string{}
	}
	close, err := parseClock(closeTime)
	if err != nil {
		return []string{}
	}

	brStart, brEnd := -1, -1
	if breakStart != "" && breakEnd != "" {
		if bs, err := parseClock(breakStart); err == nil {
			if be, err := parseClock(breakEnd); err == nil {
				brStart, brEnd = bs, be
			}
		}
	}

	slots := []string{}
	for cur := open; cur+serviceDuration <= close; cur += slotInterval {
		if brStart >= 0 && cur >= brStart && cur < brEnd {
			continue
		}
		slots = append(slots, formatClock(cur))
	}
	return slots
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
