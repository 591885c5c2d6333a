package create_booking

import (
	"time"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/MedicalBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PatientID int64   `json:"patientId"`
	DoctorID  int64   `json:"doctorId"`
	DateTime  string  `json:"dateTime"` // "2025-10-15T10:00:00"
	Reason    *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	at, err := handlers.ParseDateTime(r.DateTime, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		DateTime:  at,
		Reason:    r.Reason,
	}, nil
}
