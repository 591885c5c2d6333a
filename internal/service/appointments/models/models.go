package models

import (
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	DoctorID        int64     `json:"doctorId"`
	PatientID       int64     `json:"patientId"`
	AppointmentDate string    `json:"appointmentDate"` // "2025-10-15T10:00:00", время клиники
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Reason          *string   `json:"reason,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	IsCancelled     bool      `json:"isCancelled"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// PatientListResponse пациенты, которые записывались к врачу
type PatientListResponse struct {
	DoctorID   int64   `json:"doctorId"`
	PatientIDs []int64 `json:"patientIds"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		DoctorID:        a.DoctorID,
		PatientID:       a.PatientID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateTimeFormat),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Reason:          a.Reason,
		Notes:           a.Notes,
		IsCancelled:     a.IsCancelled,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp.Appointments = append(resp.Appointments, *appointmentResp)
		}
	}

	return resp
}
