package get_doctor_patients

import (
	"net/http"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
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

// Handle GET /api/v1/doctor/{doctorId}/patients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctor/{id}/patients - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	result, err := h.service.GetDoctorPatients(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("GET /doctor/{id}/patients - Failed to get patients: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/{id}/patients - Patients retrieved successfully: doctor_id=%d, count=%d",
		doctorID, len(result.PatientIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
