// Package scheduling computes conflict-free interview slots. It is pure: the
// clock and the booked-slot set are injected, storage-level uniqueness and
// retry live in the usecase layer.
package scheduling

import (
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"
)

// Business rules for interview slots.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	dayStartHour   = 10
	dayStartMinute = 0
	dayEndHour     = 17
	dayEndMinute   = 30

	// SlotInterval is the spacing between candidate start times.
	SlotInterval = 45 * time.Minute

	// HorizonDays bounds the forward search before the degraded fallback.
	HorizonDays = 90

	// SameDayLead is the minimum gap between "now" and a slot starting today.
	SameDayLead = 60 * time.Minute
)

// daySlots lists the candidate start times of one working day, in order.
// 10:00 through 17:30 inclusive in 45-minute steps.
var daySlots = buildDaySlots()

func buildDaySlots() []string {
	var slots []string
	start := time.Date(2000, 1, 1, dayStartHour, dayStartMinute, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, dayEndHour, dayEndMinute, 0, 0, time.UTC)
	for t := start; !t.After(end); t = t.Add(SlotInterval) {
		slots = append(slots, t.Format(TimeLayout))
	}
	return slots
}

// IsWorkday reports whether t falls on a weekday.
func IsWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextAvailable returns the first slot on or after now that is a weekday slot,
// respects the same-day lead time, and is not in booked. The second return is
// false when the horizon was exhausted and the degraded fallback (next weekday
// at the first slot of the day, booked or not) was used.
func NextAvailable(now time.Time, booked map[domain.InterviewSlot]bool) (domain.InterviewSlot, bool) {
	for day := 0; day <= HorizonDays; day++ {
		date := now.AddDate(0, 0, day)
		if !IsWorkday(date) {
			continue
		}
		dateStr := date.Format(DateLayout)
		for _, tm := range daySlots {
			if day == 0 && !meetsLeadTime(now, tm) {
				continue
			}
			slot := domain.InterviewSlot{Date: dateStr, Time: tm}
			if !booked[slot] {
				return slot, true
			}
		}
	}
	return fallbackSlot(now), false
}

// fallbackSlot is tomorrow (skipping weekends) at the first slot of the day.
// Deterministic and degraded, never an error.
func fallbackSlot(now time.Time) domain.InterviewSlot {
	date := now.AddDate(0, 0, 1)
	for !IsWorkday(date) {
		date = date.AddDate(0, 0, 1)
	}
	return domain.InterviewSlot{Date: date.Format(DateLayout), Time: daySlots[0]}
}

func meetsLeadTime(now time.Time, tm string) bool {
	t, err := time.Parse(TimeLayout, tm)
	if err != nil {
		return false
	}
	slotStart := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return !slotStart.Before(now.Add(SameDayLead))
}

// ValidateSlot checks a caller-proposed slot against the grid rules: parseable
// date and time, weekday, and a start time on the 45-minute grid. It does not
// check availability; that is the repository's uniqueness constraint.
func ValidateSlot(slot domain.InterviewSlot) error {
	date, err := time.Parse(DateLayout, slot.Date)
	if err != nil {
		return fmt.Errorf("invalid interview date %q: expected YYYY-MM-DD", slot.Date)
	}
	if !IsWorkday(date) {
		return fmt.Errorf("interview date %s falls on a weekend", slot.Date)
	}
	for _, tm := range daySlots {
		if tm == slot.Time {
			return nil
		}
	}
	return fmt.Errorf("interview time %q is outside the %s–%s grid", slot.Time, daySlots[0], daySlots[len(daySlots)-1])
}

// SlotStart converts a slot to its wall-clock start in loc.
func SlotStart(slot domain.InterviewSlot, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, slot.Date+" "+slot.Time, loc)
}
