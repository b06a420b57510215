package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Пагинация списков
const (
	DefaultLimit uint64 = 20
	MaxLimit     uint64 = 100
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
	Limit  uint64  `json:"limit,omitempty"`
	Offset uint64  `json:"offset,omitempty"`
}

// ListBookingsRequest запрос администратора на список всех бронирований
type ListBookingsRequest struct {
	FieldID       *int64     `json:"fieldId,omitempty"`
	Status        *string    `json:"status,omitempty"`
	PaymentStatus *string    `json:"paymentStatus,omitempty"`
	DateFrom      *time.Time `json:"dateFrom,omitempty"`
	DateTo        *time.Time `json:"dateTo,omitempty"`
	Limit         uint64     `json:"limit,omitempty"`
	Offset        uint64     `json:"offset,omitempty"`
}

// Response модели

// FieldInfo краткие данные поля в бронировании
type FieldInfo struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Sport        string          `json:"sport"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
}

// OwnerInfo данные владельца бронирования
type OwnerInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	FieldID     int64           `json:"fieldId"`
	BookingDate string          `json:"bookingDate"` // "2025-10-15"
	StartTime   string          `json:"startTime"`   // "10:00"
	EndTime     string          `json:"endTime"`     // "12:00"
	TotalHours  decimal.Decimal `json:"totalHours"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`

	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	Notes          *string `json:"notes,omitempty"`
	ProofOfPayment string  `json:"proofOfPayment"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
	Status        string `json:"status"`

	Field *FieldInfo `json:"field,omitempty"`
	Owner *OwnerInfo `json:"owner,omitempty"`

	PaidAt      *string   `json:"paidAt,omitempty"`      // ISO 8601 format
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    uint64            `json:"limit"`
	Offset   uint64            `json:"offset"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		FieldID:        b.FieldID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		TotalHours:     b.TotalHours(),
		TotalPrice:     b.TotalPrice,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		Notes:          b.Notes,
		ProofOfPayment: b.ProofOfPayment,
		PaymentMethod:  string(b.PaymentMethod),
		PaymentStatus:  string(b.PaymentStatus),
		Status:         string(b.Status),
		PaidAt:         formatTime(b.PaidAt),
		CancelledAt:    formatTime(b.CancelledAt),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.Field != nil {
		resp.Field = &FieldInfo{
			ID:           b.Field.ID,
			Name:         b.Field.Name,
			Sport:        string(b.Field.Sport),
			PricePerHour: b.Field.PricePerHour,
		}
	}

	if b.Owner != nil {
		resp.Owner = &OwnerInfo{
			ID:    b.Owner.ID,
			Name:  b.Owner.Name,
			Email: b.Owner.Email,
			Phone: b.Owner.Phone,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total int64, limit, offset uint64) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// NormalizeLimit применяет лимит по умолчанию и верхнюю границу
func NormalizeLimit(limit uint64) uint64 {
	if limit == 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
