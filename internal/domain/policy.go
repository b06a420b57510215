package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrCancellationNotAllowed is returned by a cancellation policy that refuses the cancel
var ErrCancellationNotAllowed = errors.New("domain: cancellation not allowed")

// CancellationPolicy decides whether a booking may be cancelled at the given moment.
// It returns nil to allow the cancellation.
type CancellationPolicy func(booking *Booking, now time.Time) error

// AllowAlways permits every cancellation of a non-terminal booking
func AllowAlways(*Booking, time.Time) error {
	return nil
}

// MinNoticePolicy refuses cancellations later than notice before the booking start.
// The start moment is computed in now's location.
func MinNoticePolicy(notice time.Duration) CancellationPolicy {
	return func(b *Booking, now time.Time) error {
		startsAt, err := b.StartsAt(now.Location())
		if err != nil {
			return err
		}
		if startsAt.Sub(now) < notice {
			return fmt.Errorf("%w: must cancel at least %s before start", ErrCancellationNotAllowed, notice)
		}
		return nil
	}
}

// CancellationPolicyFromMinutes returns MinNoticePolicy for a positive value and AllowAlways otherwise
func CancellationPolicyFromMinutes(minutes int) CancellationPolicy {
	if minutes <= 0 {
		return AllowAlways
	}
	return MinNoticePolicy(time.Duration(minutes) * time.Minute)
}

// DateOnly strips the time of day, keeping the calendar date in loc
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
