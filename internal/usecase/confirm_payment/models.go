package confirm_payment

import "github.com/m04kA/SMC-FieldBookingService/internal/domain"

// Request модель запроса на подтверждение оплаты администратором
type Request struct {
	BookingID     int64
	PaymentStatus string // "paid" или "failed"
	AdminID       int64
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking

	// Changed false, если решение повторяет текущее состояние
	Changed bool

	// IncomeScheduled true, если поставлено событие на запись дохода
	IncomeScheduled bool
}
