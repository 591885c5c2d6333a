package get_time_off

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/timeoff/models"
)

type TimeOffService interface {
	FindOverlapping(ctx context.Context, doctorID int64, start, end string) (*models.TimeOffListResponse, error)
	GetUpcoming(ctx context.Context, doctorID int64) (*models.TimeOffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
