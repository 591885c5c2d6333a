package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages map[string][]byte
	err      error
	closed   bool
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	if p.messages == nil {
		p.messages = make(map[string][]byte)
	}
	p.messages[routingKey] = payload
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []string
}

func (r *fakeRecorder) RecordNotification(event, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, event+":"+result)
}

func TestDispatcher_PublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{}
	d := NewDispatcher(publisher, nil, time.Second, recorder, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, domain.AppointmentEvent{
		Type:            domain.EventAppointmentBooked,
		AppointmentID:   42,
		AppointmentDate: time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC),
	})
	cancel()

	require.NoError(t, d.Close())
	assert.True(t, publisher.closed)

	payload, ok := publisher.messages["appointment.booked"]
	require.True(t, ok)

	var event domain.AppointmentEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, int64(42), event.AppointmentID)
	assert.Equal(t, []string{"appointment.booked:success"}, recorder.results)
}

type fakeResolver struct{}

func (fakeResolver) GetDoctor(_ context.Context, doctorID int64) (*identityservice.Doctor, error) {
	return &identityservice.Doctor{ID: doctorID, Name: "Dr. Who", Email: "who@clinic.test"}, nil
}

func (fakeResolver) GetPatient(_ context.Context, _ int64) (*identityservice.Patient, error) {
	return nil, identityservice.ErrPatientNotFound
}

func TestDispatcher_ResolvesParticipants(t *testing.T) {
	publisher := &fakePublisher{}
	d := NewDispatcher(publisher, fakeResolver{}, time.Second, nil, logger.Nop())

	d.Notify(context.Background(), domain.AppointmentEvent{
		Type:          domain.EventAppointmentRescheduled,
		AppointmentID: 5,
		Doctor:        domain.Participant{ID: 3},
		Patient:       domain.Participant{ID: 4},
	})
	require.NoError(t, d.Close())

	var event domain.AppointmentEvent
	require.NoError(t, json.Unmarshal(publisher.messages["appointment.rescheduled"], &event))
	assert.Equal(t, "who@clinic.test", event.Doctor.Email)
	assert.Equal(t, int64(4), event.Patient.ID)
	assert.Empty(t, event.Patient.Email)
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	recorder := &fakeRecorder{}
	d := NewDispatcher(publisher, nil, time.Second, recorder, logger.Nop())

	d.Notify(context.Background(), domain.AppointmentEvent{Type: domain.EventAppointmentCancelled, AppointmentID: 1})

	require.NoError(t, d.Close())
	assert.Equal(t, []string{"appointment.cancelled:error"}, recorder.results)
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{}
	d := NewDispatcher(publisher, nil, time.Second, recorder, logger.Nop())

	require.NoError(t, d.Close())
	d.Notify(context.Background(), domain.AppointmentEvent{Type: domain.EventAppointmentConfirmed, AppointmentID: 1})

	assert.Empty(t, publisher.messages)
	assert.Equal(t, []string{"appointment.confirmed:dropped"}, recorder.results)
}
