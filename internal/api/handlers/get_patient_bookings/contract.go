package get_patient_bookings

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetPatientUpcoming(ctx context.Context, patientID int64) (*models.AppointmentListResponse, error)
	GetPatientHistory(ctx context.Context, patientID int64) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
