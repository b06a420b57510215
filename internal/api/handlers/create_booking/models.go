package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FieldID        int64   `json:"fieldId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	EndTime        string  `json:"endTime"`     // "12:00"
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	Notes          *string `json:"notes,omitempty"`
	ProofOfPayment string  `json:"proofOfPayment"` // URL загруженного чека
}

// FieldResponse краткие данные поля
type FieldResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Sport        string          `json:"sport"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
}

// OwnerResponse данные владельца
type OwnerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	FieldID        int64           `json:"fieldId"`
	BookingDate    string          `json:"bookingDate"`
	StartTime      string          `json:"startTime"`
	EndTime        string          `json:"endTime"`
	TotalHours     decimal.Decimal `json:"totalHours"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	CustomerName   string          `json:"customerName"`
	CustomerPhone  string          `json:"customerPhone"`
	Notes          *string         `json:"notes,omitempty"`
	ProofOfPayment string          `json:"proofOfPayment"`
	PaymentMethod  string          `json:"paymentMethod"`
	PaymentStatus  string          `json:"paymentStatus"`
	Status         string          `json:"status"`
	Field          *FieldResponse  `json:"field,omitempty"`
	Owner          *OwnerResponse  `json:"owner,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Время передается как есть: его формат проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:         userID,
		FieldID:        r.FieldID,
		Date:           bookingDate,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		Notes:          r.Notes,
		ProofOfPayment: r.ProofOfPayment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		FieldID:        resp.FieldID,
		BookingDate:    resp.BookingDate.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		TotalHours:     resp.TotalHours,
		TotalPrice:     resp.TotalPrice,
		CustomerName:   resp.CustomerName,
		CustomerPhone:  resp.CustomerPhone,
		Notes:          resp.Notes,
		ProofOfPayment: resp.ProofOfPayment,
		PaymentMethod:  resp.PaymentMethod,
		PaymentStatus:  resp.PaymentStatus,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.Field != nil {
		out.Field = &FieldResponse{
			ID:           resp.Field.ID,
			Name:         resp.Field.Name,
			Sport:        resp.Field.Sport,
			PricePerHour: resp.Field.PricePerHour,
		}
	}

	if resp.Owner != nil {
		out.Owner = &OwnerResponse{
			ID:    resp.Owner.ID,
			Name:  resp.Owner.Name,
			Email: resp.Owner.Email,
			Phone: resp.Owner.Phone,
		}
	}

	return out
}
