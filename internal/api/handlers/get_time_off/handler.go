package get_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/timeoff"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidRange    = "некорректный диапазон дат, ожидается start и end в формате YYYY-MM-DD"
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

// HandleRange GET /api/v1/doctor/{doctorId}/time-off
// Query params: start, end (required, YYYY-MM-DD)
// Периоды, пересекающиеся с диапазоном
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/time-off - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	result, err := h.service.FindOverlapping(r.Context(), doctorID, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		if errors.Is(err, timeoff.ErrInvalidInput) {
			h.logger.Warn("GET /doctor/{id}/time-off - Invalid range: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}

		h.logger.Error("GET /doctor/{id}/time-off - Failed to get periods: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/time-off - Periods retrieved successfully: doctor_id=%d, count=%d",
		doctorID, len(result.Periods))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpcoming GET /api/v1/doctor/{doctorId}/time-off/upcoming
func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/time-off/upcoming - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	result, err := h.service.GetUpcoming(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("GET /doctor/{id}/time-off/upcoming - Failed to get periods: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/time-off/upcoming - Periods retrieved successfully: doctor_id=%d, count=%d",
		doctorID, len(result.Periods))
	handlers.RespondJSON(w, http.StatusOK, result)
}
