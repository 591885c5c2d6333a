package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers/add_time_off"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/cancel_booking"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/check_slot"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/confirm_booking"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/create_booking"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/delete_availability"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_booking"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_doctor_bookings"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_doctor_patients"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_patient_bookings"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_schedule"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_slots_range"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/get_time_off"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/remove_time_off"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/set_availability"
	"github.com/m04kA/MedicalBookingService/internal/api/handlers/set_weekly_schedule"
)

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	GetSchedule        *get_schedule.Handler
	SetAvailability    *set_availability.Handler
	SetWeeklySchedule  *set_weekly_schedule.Handler
	DeleteAvailability *delete_availability.Handler

	GetAvailableSlots *get_available_slots.Handler
	GetSlotsRange     *get_slots_range.Handler
	CheckSlot         *check_slot.Handler

	CreateBooking     *create_booking.Handler
	RescheduleBooking *reschedule_booking.Handler
	CancelBooking     *cancel_booking.Handler
	ConfirmBooking    *confirm_booking.Handler
	GetBooking        *get_booking.Handler

	GetPatientBookings *get_patient_bookings.Handler
	GetDoctorBookings  *get_doctor_bookings.Handler
	GetDoctorPatients  *get_doctor_patients.Handler

	AddTimeOff    *add_time_off.Handler
	RemoveTimeOff *remove_time_off.Handler
	GetTimeOff    *get_time_off.Handler
}

// RegisterRoutes регистрирует маршруты API под префиксом /api/v1
func RegisterRoutes(r *mux.Router, h *Handlers) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Расписание ---
	api.HandleFunc("/doctor/{doctorId}/schedule", h.GetSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/doctor/{doctorId}/availability", h.SetAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/doctor/{doctorId}/weekly-schedule", h.SetWeeklySchedule.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/{ruleId}", h.DeleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	api.HandleFunc("/doctor/{doctorId}/slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/doctor/{doctorId}/slots/range", h.GetSlotsRange.Handle).Methods(http.MethodGet)
	api.HandleFunc("/doctor/{doctorId}/slot-available", h.CheckSlot.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/book", h.CreateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointment/{appointmentId}", h.GetBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointment/{appointmentId}/reschedule", h.RescheduleBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointment/{appointmentId}/cancel", h.CancelBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointment/{appointmentId}/confirm", h.ConfirmBooking.Handle).Methods(http.MethodPut)

	api.HandleFunc("/patient/{patientId}/upcoming", h.GetPatientBookings.HandleUpcoming).Methods(http.MethodGet)
	api.HandleFunc("/patient/{patientId}/history", h.GetPatientBookings.HandleHistory).Methods(http.MethodGet)
	api.HandleFunc("/doctor/{doctorId}/appointments", h.GetDoctorBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/doctor/{doctorId}/patients", h.GetDoctorPatients.Handle).Methods(http.MethodGet)

	// --- Отсутствия ---
	api.HandleFunc("/doctor/{doctorId}/time-off", h.AddTimeOff.Handle).Methods(http.MethodPost)
	api.HandleFunc("/doctor/{doctorId}/time-off", h.GetTimeOff.HandleRange).Methods(http.MethodGet)
	api.HandleFunc("/doctor/{doctorId}/time-off/upcoming", h.GetTimeOff.HandleUpcoming).Methods(http.MethodGet)
	api.HandleFunc("/time-off/{periodId}", h.RemoveTimeOff.Handle).Methods(http.MethodDelete)
}
