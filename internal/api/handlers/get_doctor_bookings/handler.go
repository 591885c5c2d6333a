package get_doctor_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/appointments"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidRange    = "некорректный диапазон дат, ожидается start и end в формате YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctor/{doctorId}/appointments
// Query params: start, end (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/appointments - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	result, err := h.service.GetDoctorAppointments(r.Context(), doctorID, start, end)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /doctor/{id}/appointments - Invalid range: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}

		h.logger.Error("GET /doctor/{id}/appointments - Failed to get appointments: doctor_id=%d, error=%v",
			doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/appointments - Appointments retrieved successfully: doctor_id=%d, count=%d",
		doctorID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
