package get_booking

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, appointmentID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
