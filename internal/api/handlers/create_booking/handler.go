package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/api/handlers"
	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
	createBooking "github.com/m04kA/MedicalBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат dateTime, ожидается YYYY-MM-DDTHH:MM:SS"
	msgInvalidInput       = "некорректные данные записи"
	msgSlotNotAvailable   = "выбранное время недоступно для записи"
	msgDoctorNotFound     = "врач не найден"
	msgPatientNotFound    = "пациент не найден"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle POST /api/v1/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse dateTime %q: %v", req.DateTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /book - Slot not available: doctor_id=%d, patient_id=%d, date_time=%s",
				req.DoctorID, req.PatientID, req.DateTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDoctorNotFound):
			h.logger.Warn("POST /book - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createBooking.ErrPatientNotFound):
			h.logger.Warn("POST /book - Patient not found: patient_id=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /book - Failed to create appointment: doctor_id=%d, patient_id=%d, error=%v",
				req.DoctorID, req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book - Appointment created successfully: appointment_id=%d, doctor_id=%d, patient_id=%d",
		result.ID, result.DoctorID, result.PatientID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result))
}
