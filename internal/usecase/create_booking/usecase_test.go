package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/MedicalBookingService/internal/infra/storage/memory"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
	"github.com/m04kA/MedicalBookingService/pkg/ptr"
)

const (
	doctorID  int64 = 1
	patientID int64 = 10
)

type fakeIdentity struct {
	err error
}

func (f fakeIdentity) GetDoctor(_ context.Context, id int64) (*identityservice.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != doctorID {
		return nil, identityservice.ErrDoctorNotFound
	}
	return &identityservice.Doctor{ID: id, Name: "Dr. House", Email: "house@clinic.test", Specialization: "diagnostics"}, nil
}

func (f fakeIdentity) GetPatient(_ context.Context, id int64) (*identityservice.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id < patientID {
		return nil, identityservice.ErrPatientNotFound
	}
	return &identityservice.Patient{ID: id, Name: "John Doe", Email: "john@mail.test"}, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []domain.AppointmentEvent
}

func (f *fakeNotifier) Notify(_ context.Context, event domain.AppointmentEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (f *fakeMetrics) RecordBooking(_, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[result]++
}

type noTimeOff struct{}

func (noTimeOff) IsOff(context.Context, int64, time.Time) (bool, error) { return false, nil }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

// 2040-01-02 - понедельник
func at(hour, minute int) time.Time {
	return time.Date(2040, 1, 2, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	store    *memory.Store
	notifier *fakeNotifier
	metrics  *fakeMetrics
	uc       *UseCase
}

func newFixture(t *testing.T, identity fakeIdentity) *fixture {
	t.Helper()

	store := memory.NewStore()
	_, err := store.Availability().Create(context.Background(), &domain.AvailabilityRule{
		DoctorID:            doctorID,
		DayOfWeek:           1,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
		IsActive:            true,
	})
	require.NoError(t, err)

	checker := check_slot_availability.NewUseCase(store.Availability(), store.Appointments(), noTimeOff{}, time.UTC, logger.Nop())

	f := &fixture{
		store:    store,
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{results: map[string]int{}},
	}
	f.uc = NewUseCase(store.Appointments(), store.DoctorPatients(), checker, identity,
		store.TxManager(), f.notifier, f.metrics, time.UTC, logger.Nop())
	f.uc.timeProvider = fixedTime{now: at(8, 0).AddDate(0, 0, -1)}
	return f
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t, fakeIdentity{})
	ctx := context.Background()

	appointment, err := f.uc.Execute(ctx, &Request{
		PatientID: patientID,
		DoctorID:  doctorID,
		DateTime:  at(10, 0),
		Reason:    ptr.Ptr("  headache "),
	})
	require.NoError(t, err)

	assert.NotZero(t, appointment.ID)
	assert.Equal(t, domain.StatusScheduled, appointment.Status)
	assert.Equal(t, 30, appointment.DurationMinutes)
	assert.False(t, appointment.IsCancelled)
	require.NotNil(t, appointment.Reason)
	assert.Equal(t, "headache", *appointment.Reason)

	patients, err := f.store.DoctorPatients().ListPatientIDs(ctx, doctorID)
	require.NoError(t, err)
	assert.Equal(t, []int64{patientID}, patients)

	require.Len(t, f.notifier.events, 1)
	event := f.notifier.events[0]
	assert.Equal(t, domain.EventAppointmentBooked, event.Type)
	assert.Equal(t, appointment.ID, event.AppointmentID)
	assert.Equal(t, "house@clinic.test", event.Doctor.Email)
	assert.Equal(t, "john@mail.test", event.Patient.Email)

	assert.Equal(t, 1, f.metrics.results["success"])
}

func TestUseCase_Execute_SameSlotTwice(t *testing.T) {
	f := newFixture(t, fakeIdentity{})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{PatientID: patientID, DoctorID: doctorID, DateTime: at(10, 0)})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{PatientID: patientID + 1, DoctorID: doctorID, DateTime: at(10, 0)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Пересечение с уже созданной записью тоже конфликт
	_, err = f.uc.Execute(ctx, &Request{PatientID: patientID + 1, DoctorID: doctorID, DateTime: at(9, 45)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Len(t, f.notifier.events, 1)
	assert.Equal(t, 2, f.metrics.results["conflict"])
}

func TestUseCase_Execute_Concurrent(t *testing.T) {
	f := newFixture(t, fakeIdentity{})

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := f.uc.Execute(context.Background(), &Request{
				PatientID: patientID + int64(i),
				DoctorID:  doctorID,
				DateTime:  at(11, 0),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	appointments, err := f.store.Appointments().List(context.Background(), domain.AppointmentFilter{DoctorID: ptr.Ptr(doctorID)})
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		identity fakeIdentity
		req      *Request
		wantErr  error
	}{
		{
			name:    "missing patient id",
			req:     &Request{DoctorID: doctorID, DateTime: at(10, 0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past instant",
			req:     &Request{PatientID: patientID, DoctorID: doctorID, DateTime: at(10, 0).AddDate(0, 0, -7)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown doctor",
			req:     &Request{PatientID: patientID, DoctorID: 2, DateTime: at(10, 0)},
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "unknown patient",
			req:     &Request{PatientID: 1, DoctorID: doctorID, DateTime: at(10, 0)},
			wantErr: ErrPatientNotFound,
		},
		{
			name:     "identity unavailable",
			identity: fakeIdentity{err: identityservice.ErrServiceUnavailable},
			req:      &Request{PatientID: patientID, DoctorID: doctorID, DateTime: at(10, 0)},
			wantErr:  ErrInternal,
		},
		{
			name:    "outside schedule",
			req:     &Request{PatientID: patientID, DoctorID: doctorID, DateTime: at(13, 0)},
			wantErr: ErrSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.identity)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.notifier.events)
		})
	}
}

// duplicateOnCreate имитирует срабатывание уникального индекса после успешной проверки слота
type duplicateOnCreate struct {
	*memory.AppointmentRepository
}

func (duplicateOnCreate) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	return nil, fmt.Errorf("%w: doctor=%d", appointmentRepo.ErrDuplicateSlot, a.DoctorID)
}

func TestUseCase_Execute_UniqueViolationIsSlotNotAvailable(t *testing.T) {
	f := newFixture(t, fakeIdentity{})
	checker := check_slot_availability.NewUseCase(f.store.Availability(), f.store.Appointments(), noTimeOff{}, time.UTC, logger.Nop())
	uc := NewUseCase(duplicateOnCreate{f.store.Appointments()}, f.store.DoctorPatients(), checker, fakeIdentity{},
		f.store.TxManager(), f.notifier, f.metrics, time.UTC, logger.Nop())
	uc.timeProvider = f.uc.timeProvider
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{PatientID: patientID, DoctorID: doctorID, DateTime: at(10, 0)})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)

	// Транзакция откатилась: связь врач-пациент не создана, уведомления нет
	patients, err := f.store.DoctorPatients().ListPatientIDs(ctx, doctorID)
	require.NoError(t, err)
	assert.Empty(t, patients)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, 1, f.metrics.results["conflict"])
}
