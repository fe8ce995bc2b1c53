package shop

import (
	"time"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// dayNames is Monday-first, the order openingHours is stored in.
var dayNames = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// DefaultOpeningHours: weekdays 09-20 with a lunch break, Saturday 10-18,
// Sunday closed.
func DefaultOpeningHours() []models.DaySchedule {
	hours := make([]models.DaySchedule, 0, len(dayNames))
	for i, day := range dayNames {
		switch {
		case i < 5:
			hours = append(hours, models.DaySchedule{
				Day: day, IsOpen: true, OpenTime: "09:00", CloseTime: "20:00",
				HasBreak: true, BreakStart: "13:00", BreakEnd: "14:00",
			})
		case i == 5:
			hours = append(hours, models.DaySchedule{
				Day: day, IsOpen: true, OpenTime: "10:00", CloseTime: "18:00",
			})
		default:
			hours = append(hours, models.DaySchedule{
				Day: day, IsOpen: false, OpenTime: "09:00", CloseTime: "13:00",
			})
		}
	}
	return hours
}

func DefaultNotificationPrefs() models.NotificationPreferences {
	return models.NotificationPreferences{
		EmailNewBooking:   true,
		EmailCancellation: true,
		PushDailySummary:  true,
		SMSReminders:      false,
	}
}

// ScheduleFor resolves the weekly hours of branch, falling back to the
// shop-wide hours when the branch has no override.
func ScheduleFor(s *models.Shop, branch string) []models.DaySchedule {
	if branch != "" {
		if hours, ok := s.BranchSchedules[branch]; ok && len(hours) > 0 {
			return hours
		}
	}
	return s.OpeningHours
}

// DaySchedule picks the entry for date's weekday, or nil when the week is
// incomplete.
func DaySchedule(week []models.DaySchedule, date time.Time) *models.DaySchedule {
	idx := (int(date.Weekday()) + 6) % 7
	if idx >= len(week) {
		return nil
	}
	return &week[idx]
}

// ValidWeek checks a weekly schedule: seven days with HH:MM times and a
// break, when present, inside opening hours.
func ValidWeek(week []models.DaySchedule) bool {
	if len(week) != len(dayNames) {
		return false
	}

	for _, d := range week {
		if !d.IsOpen {
			continue
		}
		if !validHM(d.OpenTime) || !validHM(d.CloseTime) || d.OpenTime >= d.CloseTime {
			return false
		}
		if d.HasBreak {
			if !validHM(d.BreakStart) || !validHM(d.BreakEnd) {
				return false
			}
			if d.BreakStart >= d.BreakEnd || d.BreakStart < d.OpenTime || d.BreakEnd > d.CloseTime {
				return false
			}
		}
	}
	return true
}

func validHM(hm string) bool {
	if len(hm) != 5 {
		return false
	}
	_, err := time.Parse("15:04", hm)
	return err == nil
}
