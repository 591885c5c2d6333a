package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/MedicalBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/doctor/{doctorId}/slots
// Query params: date (required, YYYY-MM-DD)
// Возвращает все слоты дня, включая занятые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slots - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /doctor/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		DoctorID: doctorID,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /doctor/{id}/slots - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		h.logger.Error("GET /doctor/{id}/slots - Failed to get slots: doctor_id=%d, date=%s, error=%v",
			doctorID, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/slots - Slots retrieved successfully: doctor_id=%d, date=%s, slots_count=%d",
		doctorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
