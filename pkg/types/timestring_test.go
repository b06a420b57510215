package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical", input: "10:30", want: "10:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "trimmed", input: " 08:00 ", want: "08:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day is not a start", input: "24:00", wantErr: true},
		{name: "bad minutes", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClosingTimeFromString(t *testing.T) {
	got, err := NewClosingTimeFromString("24:00")
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, got)

	got, err = NewClosingTimeFromString("7:15")
	require.NoError(t, err)
	assert.Equal(t, TimeString("07:15"), got)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	m, err = EndOfDay.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60, m)

	_, err = TimeString("1:3").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, EndOfDay.IsAfter("23:59"))
	assert.False(t, TimeString("bad").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("24:00:00")))
	assert.Equal(t, EndOfDay, ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
