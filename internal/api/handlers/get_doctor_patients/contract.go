package get_doctor_patients

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDoctorPatients(ctx context.Context, doctorID int64) (*models.PatientListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
