package set_weekly_schedule

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
	msgInvalidSchedule    = "некорректное расписание"
	msgDoctorNotFound     = "врач не найден"
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

// Handle POST /api/v1/doctor/{doctorId}/weekly-schedule
// Полностью заменяет недельное расписание: старые правила деактивируются, новые создаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("POST /doctor/{id}/weekly-schedule - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	var req models.WeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctor/{id}/weekly-schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWeeklySchedule(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /doctor/{id}/weekly-schedule - Invalid schedule: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, availability.ErrDoctorNotFound):
			h.logger.Warn("POST /doctor/{id}/weekly-schedule - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("POST /doctor/{id}/weekly-schedule - Failed to replace schedule: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctor/{id}/weekly-schedule - Schedule replaced successfully: doctor_id=%d, rules=%d",
		doctorID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
