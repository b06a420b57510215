package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrInvalidDecision возвращается, когда решение не paid и не failed
	ErrInvalidDecision = errors.New("confirm_payment: payment status must be paid or failed")

	// ErrInvalidTransition возвращается, когда решение недопустимо для текущего статуса
	ErrInvalidTransition = errors.New("confirm_payment: transition not allowed for current booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
