package get_schedule

import (
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
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

// Handle GET /api/v1/doctor/{doctorId}/schedule
// Возвращает активные правила, упорядоченные по дню недели и времени начала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/schedule - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("GET /doctor/{id}/schedule - Failed to get schedule: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/schedule - Schedule retrieved successfully: doctor_id=%d, rules=%d",
		doctorID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
