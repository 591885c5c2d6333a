package add_time_off

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/timeoff/models"
)

type TimeOffService interface {
	AddTimeOff(ctx context.Context, doctorID int64, req *models.AddTimeOffRequest) (*models.TimeOffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
