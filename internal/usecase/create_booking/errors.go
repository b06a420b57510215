package create_booking

import "errors"

var (
	// ErrPaymentProofRequired возвращается, когда не передано подтверждение оплаты
	ErrPaymentProofRequired = errors.New("create_booking: payment proof is required")

	// ErrPastDate возвращается при попытке забронировать прошедшую дату
	ErrPastDate = errors.New("create_booking: cannot book for past dates")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrFieldNotFound возвращается, когда поле не найдено или неактивно
	ErrFieldNotFound = errors.New("create_booking: field not found")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("create_booking: invalid time format")

	// ErrInvalidTimeRange возвращается, когда время окончания не позже времени начала
	ErrInvalidTimeRange = errors.New("create_booking: end time must be after start time")

	// ErrInvalidDuration возвращается, когда длительность не кратна шагу бронирования
	ErrInvalidDuration = errors.New("create_booking: duration must be a multiple of the booking step")

	// ErrFieldClosed возвращается, когда у поля нет расписания на этот день недели
	ErrFieldClosed = errors.New("create_booking: field is closed on this day")

	// ErrOutsideOpenHours возвращается, когда интервал выходит за часы работы поля
	ErrOutsideOpenHours = errors.New("create_booking: booking is outside field operating hours")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: time slot is already booked")

	// ErrCustomerInfoRequired возвращается, когда не указаны имя или телефон клиента
	ErrCustomerInfoRequired = errors.New("create_booking: customer name and phone are required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
