package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgCannotConfirm        = "отменённую запись нельзя подтвердить"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointment/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointment/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.Confirm(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointment/{id}/confirm - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidStateTransition):
			h.logger.Warn("PUT /appointment/{id}/confirm - Appointment cancelled: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgCannotConfirm)

		default:
			h.logger.Error("PUT /appointment/{id}/confirm - Failed to confirm: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment/{id}/confirm - Appointment confirmed successfully: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
