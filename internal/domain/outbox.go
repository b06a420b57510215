package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutboxEvent is a pending notification written by the service and delivered by the relay
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	AggregateID int64
	Payload     []byte
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// BookingPaidEvent is the payload of EventBookingPaid
type BookingPaidEvent struct {
	EventID     string          `json:"eventId"`
	BookingID   int64           `json:"bookingId"`
	FieldID     int64           `json:"fieldId"`
	FieldName   string          `json:"fieldName"`
	Sport       Sport           `json:"sport"`
	Amount      decimal.Decimal `json:"amount"`
	BookingDate string          `json:"bookingDate"`
	ConfirmedBy int64           `json:"confirmedBy"`
	PaidAt      time.Time       `json:"paidAt"`
}
