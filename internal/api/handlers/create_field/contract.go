package create_field

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

type FieldService interface {
	Create(ctx context.Context, req *models.SaveFieldRequest) (*models.FieldResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
