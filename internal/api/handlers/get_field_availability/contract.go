package get_field_availability

import (
	"context"

	getFieldAvailability "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_field_availability"
)

type GetFieldAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getFieldAvailability.Request) (*getFieldAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
