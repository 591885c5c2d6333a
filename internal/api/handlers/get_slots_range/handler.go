package get_slots_range

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/MedicalBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidDates    = "некорректные даты, ожидается start и end в формате YYYY-MM-DD"
	msgInvalidRange    = "некорректный диапазон дат"
	msgRangeTooLarge   = "диапазон дат слишком большой"
)

type Handler struct {
	useCase  GetSlotsRangeUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetSlotsRangeUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/doctor/{doctorId}/slots/range
// Query params: start, end (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slots/range - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	startDate, err := handlers.ParseDate(r.URL.Query().Get("start"), h.location)
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slots/range - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	endDate, err := handlers.ParseDate(r.URL.Query().Get("end"), h.location)
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/slots/range - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.ExecuteRange(r.Context(), &getAvailableSlots.RangeRequest{
		DoctorID:  doctorID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /doctor/{id}/slots/range - Range too large: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /doctor/{id}/slots/range - Invalid range: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /doctor/{id}/slots/range - Failed to get slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctor/{id}/slots/range - Slots retrieved successfully: doctor_id=%d, days=%d",
		doctorID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
