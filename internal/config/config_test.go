package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "db"
dbname = "field_booking"

[booking]
timezone = "UTC"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Equal(t, "finance.booking-income", cfg.Broker.Queue)
	assert.Equal(t, "host=db port=5432 user= password= dbname=field_booking sslmode=disable", cfg.Database.DSN())

	prices, err := cfg.PriceTable()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150000).Equal(prices[domain.SportFutsal]))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIELDBOOKING_DATABASE_HOST", "postgres.internal")
	t.Setenv("FIELDBOOKING_BOOKING_ADVANCE_BOOKING_DAYS", "14")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, 14, cfg.Booking.AdvanceBookingDays)
}

func TestLoad_PricingOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[pricing]
Padel = 210000.5
`))
	require.NoError(t, err)

	prices, err := cfg.PriceTable()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("210000.5").Equal(prices[domain.SportPadel]))
	assert.True(t, decimal.NewFromInt(50000).Equal(prices[domain.SportBadminton]))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing host", content: "[database]\ndbname = \"x\"\n"},
		{name: "unknown sport", content: minimalConfig + "[pricing]\nTennis = 1\n"},
		{name: "non-positive price", content: minimalConfig + "[pricing]\nFutsal = 0\n"},
		{name: "bad timezone", content: "[database]\nhost = \"db\"\ndbname = \"x\"\n[booking]\ntimezone = \"Mars/Base\"\n"},
		{name: "broker without url", content: minimalConfig + "[broker]\nenabled = true\n"},
		{name: "negative notice", content: minimalConfig + "cancel_min_notice_minutes = -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}
