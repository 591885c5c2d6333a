package get_patient_bookings

import (
	"context"
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
)

const (
	msgInvalidPatientID = "некорректный ID пациента"
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

// HandleUpcoming GET /api/v1/patient/{patientId}/upcoming
// Будущие неотменённые записи по возрастанию времени
func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "GET /patient/{id}/upcoming", h.service.GetPatientUpcoming)
}

// HandleHistory GET /api/v1/patient/{patientId}/history
// Все записи пациента, включая отменённые, новые первыми
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "GET /patient/{id}/history", h.service.GetPatientHistory)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	fetch func(ctx context.Context, patientID int64) (*models.AppointmentListResponse, error),
) {
	patientID, err := handlers.PathInt64(r, "patientId")
	if err != nil {
		h.logger.Warn("%s - Invalid patient ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	result, err := fetch(r.Context(), patientID)
	if err != nil {
		h.logger.Error("%s - Failed to get appointments: patient_id=%d, error=%v", route, patientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Appointments retrieved successfully: patient_id=%d, count=%d",
		route, patientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
