package domain

import "time"

// AppointmentEventType тип события для уведомлений
type AppointmentEventType string

const (
	EventAppointmentBooked      AppointmentEventType = "appointment.booked"
	EventAppointmentRescheduled AppointmentEventType = "appointment.rescheduled"
	EventAppointmentCancelled   AppointmentEventType = "appointment.cancelled"
	EventAppointmentConfirmed   AppointmentEventType = "appointment.confirmed"
)

// Participant врач или пациент с контактами для уведомлений
type Participant struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization,omitempty"`
}

// AppointmentEvent событие записи, публикуемое для рассылки писем
type AppointmentEvent struct {
	Type            AppointmentEventType `json:"type"`
	AppointmentID   int64                `json:"appointmentId"`
	Doctor          Participant          `json:"doctor"`
	Patient         Participant          `json:"patient"`
	AppointmentDate time.Time            `json:"appointmentDate"`
	PreviousDate    *time.Time           `json:"previousDate,omitempty"`
	Reason          *string              `json:"reason,omitempty"`
	OccurredAt      time.Time            `json:"occurredAt"`
}
