package get_field_availability

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модель запроса занятости поля на дату
type Request struct {
	FieldID int64
	Date    time.Time // Дата (время суток игнорируется)
}

// Response модель ответа: расписание дня и занятые интервалы по возрастанию начала
type Response struct {
	FieldID   int64
	Date      time.Time
	IsOpen    bool
	OpenTime  *types.TimeString // nil, если поле закрыто в этот день
	CloseTime *types.TimeString
	Booked    []domain.BookedSlot
}
