package set_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/availability"
	"github.com/m04kA/MedicalBookingService/internal/service/availability/models"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректное правило расписания"
	msgDoctorNotFound     = "врач не найден"
	msgRuleNotFound       = "правило расписания не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/doctor/{doctorId}/availability
// Создаёт правило или обновляет существующее, если в теле указан id
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("POST /doctor/{id}/availability - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	var req models.RuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctor/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /doctor/{id}/availability - Invalid rule: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, availability.ErrDoctorNotFound):
			h.logger.Warn("POST /doctor/{id}/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("POST /doctor/{id}/availability - Rule not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("POST /doctor/{id}/availability - Failed to set availability: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctor/{id}/availability - Rule saved successfully: doctor_id=%d, rule_id=%d",
		doctorID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
