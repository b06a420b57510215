package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модели

// CreateRecordRequest запрос администратора на ручную финансовую запись
type CreateRecordRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	CreatedBy   int64           `json:"-"`
}

// ListRecordsRequest фильтры списка финансовых записей
type ListRecordsRequest struct {
	From *time.Time
	To   *time.Time
	Type *string
}

// Response модели

// RecordResponse ответ с финансовой записью
type RecordResponse struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	BookingID   *int64          `json:"bookingId,omitempty"`
	CreatedBy   *int64          `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// RecordListResponse ответ со списком записей и итогами
type RecordListResponse struct {
	Records      []RecordResponse `json:"records"`
	TotalIncome  decimal.Decimal  `json:"totalIncome"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	Balance      decimal.Decimal  `json:"balance"`
}

// FromDomainRecord конвертирует domain модель в DTO
func FromDomainRecord(r *domain.FinanceRecord) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		ID:          r.ID,
		Type:        string(r.Type),
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date.Format(domain.DateFormat),
		BookingID:   r.BookingID,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainRecordList конвертирует список и считает итоги
func FromDomainRecordList(records []*domain.FinanceRecord) *RecordListResponse {
	resp := &RecordListResponse{
		Records:      make([]RecordResponse, 0, len(records)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, r := range records {
		switch r.Type {
		case domain.FinanceIncome:
			resp.TotalIncome = resp.TotalIncome.Add(r.Amount)
		case domain.FinanceExpense:
			resp.TotalExpense = resp.TotalExpense.Add(r.Amount)
		}
		resp.Records = append(resp.Records, *FromDomainRecord(r))
	}
	resp.Balance = resp.TotalIncome.Sub(resp.TotalExpense)

	return resp
}
