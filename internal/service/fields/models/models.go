package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модели

// AvailabilityRule расписание поля на день недели (0 = воскресенье)
type AvailabilityRule struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	OpenTime  string `json:"openTime" validate:"required"`  // "08:00"
	CloseTime string `json:"closeTime" validate:"required"` // "22:00" или "24:00"
}

// SaveFieldRequest запрос на создание или обновление поля.
// Цена не передается: она определяется видом спорта.
type SaveFieldRequest struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Sport        string             `json:"sport" validate:"required,oneof=Futsal MiniSoccer Badminton Padel"`
	Availability []AvailabilityRule `json:"availability" validate:"dive"`
}

// ToDomainAvailability конвертирует расписание в domain модели
func (r *SaveFieldRequest) ToDomainAvailability() ([]domain.DayAvailability, error) {
	rules := make([]domain.DayAvailability, 0, len(r.Availability))
	for _, a := range r.Availability {
		open, err := types.NewTimeStringFromString(a.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("day %d open time: %w", a.DayOfWeek, err)
		}
		closing, err := types.NewClosingTimeFromString(a.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("day %d close time: %w", a.DayOfWeek, err)
		}
		rules = append(rules, domain.DayAvailability{
			DayOfWeek: a.DayOfWeek,
			OpenTime:  open,
			CloseTime: closing,
		})
	}
	return rules, nil
}

// Response модели

// AvailabilityResponse расписание на день недели
type AvailabilityResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// FieldResponse ответ с данными поля
type FieldResponse struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Sport        string                 `json:"sport"`
	PricePerHour decimal.Decimal        `json:"pricePerHour"`
	Availability []AvailabilityResponse `json:"availability"`
	IsActive     bool                   `json:"isActive"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// FieldListResponse ответ со списком полей
type FieldListResponse struct {
	Fields []FieldResponse `json:"fields"`
}

// FromDomainField конвертирует domain модель в DTO
func FromDomainField(f *domain.Field) *FieldResponse {
	if f == nil {
		return nil
	}

	resp := &FieldResponse{
		ID:           f.ID,
		Name:         f.Name,
		Sport:        string(f.Sport),
		PricePerHour: f.PricePerHour,
		Availability: make([]AvailabilityResponse, 0, len(f.Availability)),
		IsActive:     f.IsActive,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}

	for _, a := range f.Availability {
		resp.Availability = append(resp.Availability, AvailabilityResponse{
			DayOfWeek: a.DayOfWeek,
			OpenTime:  a.OpenTime.String(),
			CloseTime: a.CloseTime.String(),
		})
	}

	return resp
}

// FromDomainFieldList конвертирует список domain моделей в DTO
func FromDomainFieldList(fields []*domain.Field) *FieldListResponse {
	resp := &FieldListResponse{
		Fields: make([]FieldResponse, 0, len(fields)),
	}
	for _, f := range fields {
		if fr := FromDomainField(f); fr != nil {
			resp.Fields = append(resp.Fields, *fr)
		}
	}
	return resp
}
