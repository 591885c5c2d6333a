package reschedule_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/MedicalBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
)

type fakeUseCase struct {
	err error
}

func (f fakeUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: req.AppointmentID, AppointmentDate: req.NewDateTime, Status: domain.StatusScheduled}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{name: "moved", id: "5", body: `{"newDateTime":"2030-01-14T10:30:00"}`, wantStatus: http.StatusOK},
		{name: "bad id", id: "x", body: `{"newDateTime":"2030-01-14T10:30:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad date time", id: "5", body: `{"newDateTime":"tomorrow"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "5", body: `{"newDateTime":"2030-01-14T10:30:00"}`, err: rescheduleBooking.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "cancelled", id: "5", body: `{"newDateTime":"2030-01-14T10:30:00"}`, err: rescheduleBooking.ErrInvalidStateTransition, wantStatus: http.StatusBadRequest},
		{name: "taken", id: "5", body: `{"newDateTime":"2030-01-14T10:30:00"}`, err: rescheduleBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(fakeUseCase{err: tt.err}, time.UTC, logger.Nop())

			r := httptest.NewRequest(http.MethodPut, "/api/v1/appointment/"+tt.id+"/reschedule", strings.NewReader(tt.body))
			r = mux.SetURLVars(r, map[string]string{"appointmentId": tt.id})
			w := httptest.NewRecorder()
			h.Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
