package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Argentina/Cordoba"

var fallback atomic.Value

func init() {
	fallback.Store(DefaultTimezone)
}

// SetDefault changes the zone used for shops without one. Invalid zones
// are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		fallback.Store(tz)
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(fallback.Load().(string))
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today formats t's calendar date in tz as YYYY-MM-DD.
func Today(t time.Time, tz string) string {
	return t.In(Location(tz)).Format("2006-01-02")
}
