package remove_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/timeoff"
)

const (
	msgInvalidPeriodID = "некорректный ID периода"
	msgNotFound        = "период отсутствия не найден"
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

// Handle DELETE /api/v1/time-off/{periodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	periodID, err := handlers.PathInt64(r, "periodId")
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	if err := h.service.RemoveTimeOff(r.Context(), periodID); err != nil {
		if errors.Is(err, timeoff.ErrTimeOffNotFound) {
			h.logger.Warn("DELETE /time-off/{id} - Period not found: period_id=%d", periodID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("DELETE /time-off/{id} - Failed to remove period: period_id=%d, error=%v", periodID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /time-off/{id} - Period removed successfully: period_id=%d", periodID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
