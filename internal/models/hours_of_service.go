// internal/models/hours_of_service.go
package models

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// HOSCounter tracks one driver's daily hours-of-service totals. Every
// mutation builds a candidate, validates it against the daily limits and
// only then commits, so an over-limit update never touches stored state.
type HOSCounter struct {
	gorm.Model
	DriverID          uint    `json:"driver_id" gorm:"uniqueIndex"`
	DrivingHoursToday float64 `json:"driving_hours_today"`
	OnDutyHoursToday  float64 `json:"on_duty_hours_today"`
	TimeUntilBreak    float64 `json:"time_until_break"`
}

func NewHOSCounter() *HOSCounter {
	return &HOSCounter{TimeUntilBreak: RequiredBreakHours}
}

func (h *HOSCounter) validate() error {
	switch {
	case h.DrivingHoursToday < 0 || h.OnDutyHoursToday < 0 || h.TimeUntilBreak < 0:
		return &InvalidHoursError{Reason: "hours cannot be negative"}
	case h.DrivingHoursToday > h.OnDutyHoursToday:
		return &InvalidHoursError{Reason: "driving hours cannot exceed on-duty hours"}
	case h.DrivingHoursToday > MaxDrivingHoursPerDay:
		return &InvalidHoursError{Reason: fmt.Sprintf("driving hours would exceed the %.0f hour daily limit", MaxDrivingHoursPerDay)}
	case h.OnDutyHoursToday > MaxOnDutyHoursPerDay:
		return &InvalidHoursError{Reason: fmt.Sprintf("on-duty hours would exceed the %.0f hour daily limit", MaxOnDutyHoursPerDay)}
	}
	return nil
}

// AddDrivingTime counts driving hours against both the driving and on-duty
// totals and runs down the break countdown.
func (h *HOSCounter) AddDrivingTime(hours float64) error {
	if hours < 0 {
		return &InvalidHoursError{Reason: "hours cannot be negative"}
	}
	candidate := *h
	candidate.DrivingHoursToday += hours
	candidate.OnDutyHoursToday += hours
	candidate.TimeUntilBreak = math.Max(0, candidate.TimeUntilBreak-hours)
	if err := candidate.validate(); err != nil {
		return err
	}
	*h = candidate
	h.UpdatedAt = time.Now()
	return nil
}

// AddOnDutyTime counts non-driving duty hours; the driving total and break
// countdown are untouched.
func (h *HOSCounter) AddOnDutyTime(hours float64) error {
	if hours < 0 {
		return &InvalidHoursError{Reason: "hours cannot be negative"}
	}
	candidate := *h
	candidate.OnDutyHoursToday += hours
	if err := candidate.validate(); err != nil {
		return err
	}
	*h = candidate
	h.UpdatedAt = time.Now()
	return nil
}

// TakeBreak resets the break countdown to the required break length. The
// hours argument is validated but otherwise ignored; upstream has always
// behaved this way and callers depend on it.
func (h *HOSCounter) TakeBreak(hours float64) error {
	if hours < 0 {
		return &InvalidHoursError{Reason: "hours cannot be negative"}
	}
	h.TimeUntilBreak = RequiredBreakHours
	h.UpdatedAt = time.Now()
	return nil
}

func (h *HOSCounter) ResetForNewDay() {
	h.DrivingHoursToday = 0
	h.OnDutyHoursToday = 0
	h.TimeUntilBreak = RequiredBreakHours
	h.UpdatedAt = time.Now()
}

func (h *HOSCounter) HasReachedMaxDrivingHours() bool {
	return h.DrivingHoursToday >= MaxDrivingHoursPerDay
}

func (h *HOSCounter) HasReachedMaxOnDutyHours() bool {
	return h.OnDutyHoursToday >= MaxOnDutyHoursPerDay
}

func (h *HOSCounter) NeedsBreak() bool {
	return h.TimeUntilBreak <= 0
}

func (h *HOSCounter) RemainingDrivingHours() float64 {
	return math.Max(0, MaxDrivingHoursPerDay-h.DrivingHoursToday)
}

func (h *HOSCounter) RemainingOnDutyHours() float64 {
	return math.Max(0, MaxOnDutyHoursPerDay-h.OnDutyHoursToday)
}
