package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
	rescheduleBooking "github.com/m04kA/MedicalBookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат newDateTime, ожидается YYYY-MM-DDTHH:MM:SS"
	msgInvalidInput         = "некорректные данные переноса"
	msgNotFound             = "запись не найдена"
	msgAlreadyCancelled     = "отменённую запись нельзя перенести"
	msgSlotNotAvailable     = "выбранное время недоступно для записи"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle PUT /api/v1/appointment/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointment/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointment/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newAt, err := handlers.ParseDateTime(req.NewDateTime, h.location)
	if err != nil {
		h.logger.Warn("PUT /appointment/{id}/reschedule - Invalid newDateTime %q: %v", req.NewDateTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		AppointmentID: appointmentID,
		NewDateTime:   newAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointment/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrInvalidStateTransition):
			h.logger.Warn("PUT /appointment/{id}/reschedule - Appointment cancelled: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointment/{id}/reschedule - Slot not available: appointment_id=%d, new_date_time=%s",
				appointmentID, req.NewDateTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PUT /appointment/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /appointment/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%d",
		appointmentID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result))
}
