package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationPolicyFromMinutes(t *testing.T) {
	loc := time.UTC
	b := &Booking{
		BookingDate: time.Date(2026, 10, 16, 0, 0, 0, 0, loc),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      StatusPending,
	}

	always := CancellationPolicyFromMinutes(0)
	assert.NoError(t, always(b, time.Date(2026, 10, 16, 10, 30, 0, 0, loc)))

	notice := CancellationPolicyFromMinutes(120)
	assert.NoError(t, notice(b, time.Date(2026, 10, 16, 8, 0, 0, 0, loc)))

	err := notice(b, time.Date(2026, 10, 16, 8, 1, 0, 0, loc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	got := DateOnly(time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC), loc)
	assert.True(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc).Equal(got))
	assert.Equal(t, loc, got.Location())
}
