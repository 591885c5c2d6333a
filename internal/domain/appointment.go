package domain

import (
	"strings"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

const (
	rescheduledNotePrefix  = "Rescheduled from "
	cancellationNotePrefix = "Cancellation reason: "
)

// Appointment represents a booked visit of a patient to a doctor
// IsCancelled и Status == StatusCancelled всегда меняются вместе
type Appointment struct {
	ID              int64
	DoctorID        int64
	PatientID       int64
	AppointmentDate time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Reason          *string
	Notes           *string
	IsCancelled     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EndTime returns the moment the appointment ends
func (a *Appointment) EndTime() time.Time {
	duration := a.DurationMinutes
	if duration <= 0 {
		duration = DefaultSlotDurationMinutes
	}
	return a.AppointmentDate.Add(time.Duration(duration) * time.Minute)
}

// Overlaps returns true if the appointment intersects [start, start+duration)
// Граничные случаи (конец одного = начало другого) пересечением не считаются
func (a *Appointment) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return a.AppointmentDate.Before(end) && a.EndTime().After(start)
}

// IsActive returns true if the appointment still occupies the doctor's time
func (a *Appointment) IsActive() bool {
	return !a.IsCancelled
}

// CanBeRescheduled returns true if the appointment can be moved
func (a *Appointment) CanBeRescheduled() bool {
	return !a.IsCancelled
}

// CanBeConfirmed returns true if the doctor can confirm the appointment
func (a *Appointment) CanBeConfirmed() bool {
	return !a.IsCancelled
}

// Reschedule moves the appointment and records the previous date-time in notes
func (a *Appointment) Reschedule(newDate time.Time, durationMinutes int) {
	previous := a.AppointmentDate
	a.AppointmentDate = newDate
	a.DurationMinutes = durationMinutes
	a.Status = StatusScheduled
	a.AppendNote(rescheduledNotePrefix + previous.Format(AuditDateTimeFormat))
}

// Cancel marks the appointment as cancelled; repeating the call is harmless
func (a *Appointment) Cancel(reason string) {
	a.IsCancelled = true
	a.Status = StatusCancelled
	if reason = strings.TrimSpace(reason); reason != "" {
		a.AppendNote(cancellationNotePrefix + reason)
	}
}

// Confirm sets the confirmed status
func (a *Appointment) Confirm() {
	a.Status = StatusConfirmed
}

// AppendNote adds a line to the audit trail in notes
func (a *Appointment) AppendNote(line string) {
	if a.Notes == nil || *a.Notes == "" {
		a.Notes = &line
		return
	}
	joined := *a.Notes + "\n" + line
	a.Notes = &joined
}

// AppointmentFilter фильтр выборки записей
type AppointmentFilter struct {
	DoctorID         *int64     // Фильтр по врачу (опционально)
	PatientID        *int64     // Фильтр по пациенту (опционально)
	From             *time.Time // Начало периода включительно (опционально)
	To               *time.Time // Конец периода включительно (опционально)
	IncludeCancelled bool       // Включать ли отменённые записи
	ExcludeID        *int64     // Исключить запись (при переносе она не конфликтует сама с собой)
}
