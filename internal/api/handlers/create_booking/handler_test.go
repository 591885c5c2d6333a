package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	createBooking "github.com/m04kA/MedicalBookingService/internal/usecase/create_booking"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		ID:              7,
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.DateTime,
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "created", body: `{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00:00"}`, wantStatus: http.StatusOK},
		{name: "malformed body", body: `{"patientId":`, wantStatus: http.StatusBadRequest},
		{name: "bad date time", body: `{"patientId":10,"doctorId":1,"dateTime":"14.01.2030"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "slot taken",
			body:       `{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00:00"}`,
			err:        fmt.Errorf("%w: conflict", createBooking.ErrSlotNotAvailable),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "doctor not found",
			body:       `{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00:00"}`,
			err:        createBooking.ErrDoctorNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "patient not found",
			body:       `{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00:00"}`,
			err:        createBooking.ErrPatientNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "validation",
			body:       `{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00:00"}`,
			err:        createBooking.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal",
			body:       `{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00:00"}`,
			err:        createBooking.ErrInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			h := NewHandler(uc, time.UTC, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/book", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestHandler_Handle_ResponseBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, time.UTC, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/book",
		strings.NewReader(`{"patientId":10,"doctorId":1,"dateTime":"2030-01-14T10:00","reason":"checkup"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, time.Date(2030, 1, 14, 10, 0, 0, 0, time.UTC), uc.got.DateTime)
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "checkup", *uc.got.Reason)

	assert.Contains(t, w.Body.String(), `"appointmentDate":"2030-01-14T10:00:00"`)
	assert.Contains(t, w.Body.String(), `"status":"scheduled"`)
}
