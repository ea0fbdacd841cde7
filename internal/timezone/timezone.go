package timezone

import (
	"sync/atomic"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var gymTimezone atomic.Value

func init() {
	gymTimezone.Store(DefaultTimezone)
}

// SetDefault changes the zone used by Now. Invalid names are ignored.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	gymTimezone.Store(tz)
	return true
}

func Default() string {
	return gymTimezone.Load().(string)
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

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now is the gym-local wall clock.
func Now() time.Time {
	return time.Now().In(Location(Default()))
}

// Today formats t as the YYYY-MM-DD date shifts are keyed by.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// Clock formats t as the HH:MM time shifts are keyed by.
func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}
