package get_doctor_bookings

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDoctorAppointments(ctx context.Context, doctorID int64, start, end string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
