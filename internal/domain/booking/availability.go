package booking

import (
	"time"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// DefaultSlotGrid is the fixed set of bookable start times offered to
// clients. The midday gap is the lunch hour.
var DefaultSlotGrid = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Availability struct {
	Date   string   `json:"date"`
	Branch string   `json:"branch"`
	Open   bool     `json:"open"`
	Slots  []string `json:"slots"`
}

// AvailableSlots returns the grid slots still bookable on date.
//
// When date is the calendar day of now, only slots strictly after now's
// HH:MM survive. Any other date, past or future, gets the whole grid.
// Opening hours do not filter the grid; see Availability.Open.
func AvailableSlots(grid []string, date string, now time.Time) []string {
	slots := make([]string, 0, len(grid))
	if date != now.Format(DateLayout) {
		return append(slots, grid...)
	}

	current := now.Format(TimeLayout)
	for _, slot := range grid {
		if slot > current {
			slots = append(slots, slot)
		}
	}
	return slots
}

// IsOpen reports whether the schedule marks the day as working. A nil
// schedule counts as open.
func IsOpen(schedule *models.DaySchedule) bool {
	return schedule == nil || schedule.IsOpen
}

// ValidDateTime checks the booking date and time formats.
func ValidDateTime(date, hm string) bool {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return false
	}
	_, err := time.Parse(TimeLayout, hm)
	return err == nil && len(hm) == 5
}
