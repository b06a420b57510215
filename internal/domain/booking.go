package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the verification state of the payment proof
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var (
	// ErrInvalidTransition is returned when a status change is not allowed by the state machine
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")

	// ErrInvalidPaymentDecision is returned for a payment decision other than paid or failed
	ErrInvalidPaymentDecision = errors.New("domain: invalid payment decision")
)

// Booking is a reservation of a field for a time interval on a date
type Booking struct {
	ID      int64
	UserID  int64
	FieldID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	TotalPrice      decimal.Decimal

	CustomerName   string
	CustomerPhone  string
	Notes          *string
	ProofOfPayment string

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        BookingStatus

	PaidAt      *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Attached for display, not persisted with the booking
	Field *Field
	Owner *Owner
}

// Owner is the account that placed the booking, as reported by the user service
type Owner struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// TotalHours returns the booked duration in hours
func (b *Booking) TotalHours() decimal.Decimal {
	return HoursFromMinutes(b.DurationMinutes)
}

// Interval returns the [start, end) interval of the booking in minutes since midnight
func (b *Booking) Interval() (Interval, error) {
	return NewInterval(b.StartTime, b.EndTime)
}

// HoldsSlot returns true if the booking blocks its slot for other bookings
func (b *Booking) HoldsSlot() bool {
	return b.Status == StatusPending || b.Status == StatusActive
}

// CanBeCancelled returns true if the booking is in a non-terminal state
func (b *Booking) CanBeCancelled() bool {
	return b.HoldsSlot()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPaid returns true if the payment has been confirmed
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// StartsAt returns the absolute start moment of the booking in the given location
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := b.BookingDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute), nil
}

// ApplyPaymentDecision moves the booking through the payment part of the state machine.
// changed is false when the decision repeats the current state; firstPaid is true only
// on the first transition into paid.
func (b *Booking) ApplyPaymentDecision(decision PaymentStatus, now time.Time) (changed bool, firstPaid bool, err error) {
	if decision != PaymentPaid && decision != PaymentFailed {
		return false, false, ErrInvalidPaymentDecision
	}

	switch b.Status {
	case StatusCancelled:
		return false, false, ErrInvalidTransition

	case StatusActive:
		if decision == PaymentPaid {
			return false, false, nil
		}
		return false, false, ErrInvalidTransition

	case StatusPending:
		b.PaymentStatus = decision
		if decision == PaymentPaid {
			b.Status = StatusActive
			b.PaidAt = &now
			return true, true, nil
		}
		b.Status = StatusCancelled
		b.CancelledAt = &now
		return true, false, nil
	}

	return false, false, ErrInvalidTransition
}

// Cancel moves the booking to cancelled. Cancelling a cancelled booking is a no-op.
func (b *Booking) Cancel(now time.Time) (changed bool) {
	if b.IsCancelled() {
		return false
	}
	b.Status = StatusCancelled
	b.CancelledAt = &now
	return true
}

// BookingFilter filters booking listings
type BookingFilter struct {
	UserID        *int64
	FieldID       *int64
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         uint64
	Offset        uint64
}

// SlotQuery describes an interval on a field and date to check for conflicts
type SlotQuery struct {
	FieldID   int64
	Date      time.Time
	Interval  Interval
	ExcludeID *int64
}

// SlotHoldingStatuses are the statuses that block a slot
var SlotHoldingStatuses = []BookingStatus{
	StatusPending,
	StatusActive,
}

// BookingStatuses lists every valid booking status
var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusActive,
	StatusCancelled,
}

// PaymentStatuses lists every valid payment status
var PaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentPaid,
	PaymentFailed,
}

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range BookingStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ParsePaymentStatus validates a payment status string
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	for _, st := range PaymentStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
