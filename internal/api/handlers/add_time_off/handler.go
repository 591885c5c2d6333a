package add_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/timeoff"
	"github.com/m04kA/MedicalBookingService/internal/service/timeoff/models"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPeriod      = "некорректный период отсутствия"
	msgDoctorNotFound     = "врач не найден"
)

type Handler struct {
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/doctor/{doctorId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("POST /doctor/{id}/time-off - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	var req models.AddTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctor/{id}/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddTimeOff(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeoff.ErrInvalidInput):
			h.logger.Warn("POST /doctor/{id}/time-off - Invalid period: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, timeoff.ErrDoctorNotFound):
			h.logger.Warn("POST /doctor/{id}/time-off - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("POST /doctor/{id}/time-off - Failed to add time off: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctor/{id}/time-off - Time off added successfully: doctor_id=%d, period_id=%d",
		doctorID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
