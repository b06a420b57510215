package confirm_payment

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	confirmPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"` // "paid" или "failed"
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	Booking         *models.BookingResponse `json:"booking"`
	Changed         bool                    `json:"changed"`
	IncomeScheduled bool                    `json:"incomeScheduled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest(bookingID, adminID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		BookingID:     bookingID,
		PaymentStatus: r.PaymentStatus,
		AdminID:       adminID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		Booking:         models.FromDomainBooking(resp.Booking),
		Changed:         resp.Changed,
		IncomeScheduled: resp.IncomeScheduled,
	}
}
