package handlers

import (
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

// parseDateInGym reads a YYYY-MM-DD query value as midnight in the gym
// timezone.
func parseDateInGym(dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(timezone.Default()),
	)
}
