package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// ErrEmptyInterval is returned when an interval does not end strictly after it starts
var ErrEmptyInterval = errors.New("domain: end time must be after start time")

// BookingStepMinutes is the granularity of a booking duration.
// Half hours keep totalHours × pricePerHour exact at the stored precision.
const BookingStepMinutes = 30

var minutesPerHour = decimal.NewFromInt(60)

// Interval is a half-open [Start, End) range in minutes since midnight
type Interval struct {
	Start int
	End   int
}

// NewInterval parses HH:MM boundaries. A malformed value yields types.ErrInvalidTimeString,
// a non-positive length yields ErrEmptyInterval.
func NewInterval(start, end types.TimeString) (Interval, error) {
	s, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}
	e, err := end.Minutes()
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, fmt.Errorf("%w: %s-%s", ErrEmptyInterval, start, end)
	}
	return Interval{Start: s, End: e}, nil
}

// Minutes returns the length of the interval
func (i Interval) Minutes() int {
	return i.End - i.Start
}

// Overlaps reports whether two intervals share any minute.
// The three cases are: i starts inside o, i ends inside o, i contains o.
func (i Interval) Overlaps(o Interval) bool {
	startsDuring := o.Start <= i.Start && o.End > i.Start
	endsDuring := o.Start < i.End && o.End >= i.End
	contains := o.Start >= i.Start && o.End <= i.End
	return startsDuring || endsDuring || contains
}

// OnStep reports whether the interval length is a whole number of BookingStepMinutes
func (i Interval) OnStep() bool {
	return i.Minutes()%BookingStepMinutes == 0
}

// Within reports whether the interval fits into [openMinutes, closeMinutes]
func (i Interval) Within(openMinutes, closeMinutes int) bool {
	return i.Start >= openMinutes && i.End <= closeMinutes
}

// BookedSlot is a taken [StartTime, EndTime) pair on a field and date
type BookedSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// HoursFromMinutes converts a duration in minutes to hours
func HoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

// PriceFor returns totalHours × pricePerHour without rounding
func PriceFor(minutes int, pricePerHour decimal.Decimal) decimal.Decimal {
	return pricePerHour.Mul(HoursFromMinutes(minutes))
}
