package outbox

import "errors"

var (
	// ErrUnknownEventType возвращается, когда для типа события нет обработчика
	ErrUnknownEventType = errors.New("outbox: unknown event type")

	// ErrMalformedPayload возвращается, когда payload события не разбирается
	ErrMalformedPayload = errors.New("outbox: malformed event payload")

	// ErrDispatch возвращается, когда получатель не принял событие
	ErrDispatch = errors.New("outbox: dispatch failed")
)
