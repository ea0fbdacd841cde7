package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestSetDefault(t *testing.T) {
	defer SetDefault(DefaultTimezone)

	assert.False(t, SetDefault("Mars/Olympus"))
	assert.Equal(t, DefaultTimezone, Default())

	assert.True(t, SetDefault("UTC"))
	assert.Equal(t, "UTC", Now().Location().String())
}

func TestFormatting(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 9, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", Today(ts))
	assert.Equal(t, "07:09", Clock(ts))
}
