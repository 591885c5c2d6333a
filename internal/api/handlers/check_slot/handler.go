package check_slot

import (
	"net/http"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	checkSlot "github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidDateTime = "некорректный формат dateTime, ожидается YYYY-MM-DDTHH:MM:SS"
)

type Handler struct {
	useCase  CheckSlotUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckSlotUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/doctor/{doctorId}/slot-available
// Query params: dateTime (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slot-available - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	at, err := handlers.ParseDateTime(r.URL.Query().Get("dateTime"), h.location)
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slot-available - Invalid dateTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkSlot.Request{DoctorID: doctorID, DateTime: at})
	if err != nil {
		h.logger.Error("GET /doctor/{id}/slot-available - Failed to check slot: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/slot-available - Slot checked: doctor_id=%d, available=%t, reason=%s",
		doctorID, result.Available, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
