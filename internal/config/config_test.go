package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, NotifyLocal, cfg.NotifyDriver)
	assert.Equal(t, IdentityLocal, cfg.IdentityProvider)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 3, cfg.BookingMaxRetries)
	assert.Equal(t, "0 0 9 11 * *", cfg.OverdueSweepCron)
	assert.Empty(t, cfg.AdminEmails)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("ADMIN_EMAILS", " owner@gym.com, ,coach@gym.com ")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("BOOKING_MAX_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"owner@gym.com", "coach@gym.com"}, cfg.AdminEmails)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5, cfg.BookingMaxRetries)
}

func TestLoadRejectsBadExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StoreDriver:       StoreMemory,
			NotifyDriver:      NotifyLocal,
			IdentityProvider:  IdentityLocal,
			JWTSecret:         "s",
			BookingMaxRetries: 3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown store", func(c *Config) { c.StoreDriver = "sqlite" }, true},
		{"firestore without project", func(c *Config) { c.StoreDriver = StoreFirestore }, true},
		{"firestore with project", func(c *Config) { c.StoreDriver = StoreFirestore; c.FirebaseProjectID = "p" }, false},
		{"mongo without uri", func(c *Config) { c.StoreDriver = StoreMongo; c.MongoDB = "gym" }, true},
		{"unknown notifier", func(c *Config) { c.NotifyDriver = "kafka" }, true},
		{"redis without url", func(c *Config) { c.NotifyDriver = NotifyRedis }, true},
		{"firebase identity without project", func(c *Config) { c.IdentityProvider = IdentityFirebase }, true},
		{"local identity without secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero retries", func(c *Config) { c.BookingMaxRetries = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
