package set_weekly_schedule

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetWeeklySchedule(ctx context.Context, doctorID int64, req *models.WeeklyScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
