package delete_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/availability"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgNotFound      = "правило расписания не найдено"
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

// Handle DELETE /api/v1/availability/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.DeleteAvailability(r.Context(), ruleID); err != nil {
		if errors.Is(err, availability.ErrAvailabilityNotFound) {
			h.logger.Warn("DELETE /availability/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("DELETE /availability/{id} - Failed to delete rule: rule_id=%d, error=%v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /availability/{id} - Rule deleted successfully: rule_id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
