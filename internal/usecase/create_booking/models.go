package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модель запроса на создание бронирования.
// Время передается строками: разбор формата входит в проверки usecase.
type Request struct {
	UserID         int64     // ID владельца бронирования
	FieldID        int64     // ID поля
	Date           time.Time // Дата бронирования (время суток игнорируется)
	StartTime      string    // "10:00"
	EndTime        string    // "12:00"
	CustomerName   string
	CustomerPhone  string
	Notes          *string // Дополнительные заметки (опционально)
	ProofOfPayment string  // Ссылка на загруженный чек перевода
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	UserID         int64
	FieldID        int64
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	TotalHours     decimal.Decimal
	TotalPrice     decimal.Decimal
	CustomerName   string
	CustomerPhone  string
	Notes          *string
	ProofOfPayment string
	PaymentMethod  string
	PaymentStatus  string
	Status         string

	Field *FieldInfo
	Owner *OwnerInfo // nil, если UserService недоступен

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldInfo данные поля для отображения
type FieldInfo struct {
	ID           int64
	Name         string
	Sport        string
	PricePerHour decimal.Decimal
}

// OwnerInfo данные владельца бронирования для отображения
type OwnerInfo struct {
	ID    int64
	Name  string
	Email string
	Phone string
}
