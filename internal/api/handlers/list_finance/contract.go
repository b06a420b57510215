package list_finance

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/finance/models"
)

type FinanceService interface {
	List(ctx context.Context, req *models.ListRecordsRequest) (*models.RecordListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
