package availability

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/internal/infra/storage/memory"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/service/availability/models"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
	"github.com/m04kA/MedicalBookingService/pkg/ptr"
)

type fakeIdentity struct {
	doctors map[int64]bool
}

func (f *fakeIdentity) GetDoctor(_ context.Context, doctorID int64) (*identityservice.Doctor, error) {
	if !f.doctors[doctorID] {
		return nil, identityservice.ErrDoctorNotFound
	}
	return &identityservice.Doctor{ID: doctorID}, nil
}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	svc := NewService(
		store.Availability(),
		&fakeIdentity{doctors: map[int64]bool{1: true}},
		store.TxManager(),
		30,
		logger.Nop(),
	)
	return svc, store
}

func TestService_SetAvailabilityDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	rule, err := svc.SetAvailability(context.Background(), 1, &models.RuleRequest{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 30, rule.SlotDurationMinutes)
	assert.True(t, rule.IsActive)
	assert.Equal(t, "Monday", rule.DayName)
	assert.Equal(t, "09:00", rule.StartTime)
}

func TestService_SetAvailabilityUpdatesExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.SetAvailability(ctx, 1, &models.RuleRequest{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	updated, err := svc.SetAvailability(ctx, 1, &models.RuleRequest{
		ID:                  ptr.Ptr(created.ID),
		DayOfWeek:           2,
		StartTime:           "10:00",
		EndTime:             "14:00",
		SlotDurationMinutes: ptr.Ptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	schedule, err := svc.GetSchedule(ctx, 1)
	require.NoError(t, err)
	require.Len(t, schedule.Rules, 1)
	assert.Equal(t, "10:00", schedule.Rules[0].StartTime)
	assert.Equal(t, 20, schedule.Rules[0].SlotDurationMinutes)
}

func TestService_SetAvailabilityErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		doctorID int64
		req      models.RuleRequest
		wantErr  error
	}{
		{
			name:     "unknown doctor",
			doctorID: 99,
			req:      models.RuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			wantErr:  ErrDoctorNotFound,
		},
		{
			name:     "day out of range",
			doctorID: 1,
			req:      models.RuleRequest{DayOfWeek: 8, StartTime: "09:00", EndTime: "10:00"},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "start after end",
			doctorID: 1,
			req:      models.RuleRequest{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "zero duration",
			doctorID: 1,
			req:      models.RuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: ptr.Ptr(0)},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "unknown rule id",
			doctorID: 1,
			req:      models.RuleRequest{ID: ptr.Ptr(int64(404)), DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			wantErr:  ErrAvailabilityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetAvailability(ctx, tt.doctorID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_SetWeeklyScheduleReplacesActiveRules(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, 1, &models.RuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	schedule, err := svc.SetWeeklySchedule(ctx, 1, &models.WeeklyScheduleRequest{Rules: []models.RuleRequest{
		{DayOfWeek: 3, StartTime: "14:00", EndTime: "18:00"},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 2, StartTime: "08:00", EndTime: "09:00", IsActive: ptr.Ptr(false)},
	}})
	require.NoError(t, err)

	require.Len(t, schedule.Rules, 3)
	assert.Equal(t, 2, schedule.Rules[0].DayOfWeek)
	assert.Equal(t, "08:00", schedule.Rules[0].StartTime)
	assert.Equal(t, 3, schedule.Rules[2].DayOfWeek)

	mondayRules, err := store.Availability().ListActiveByDoctorAndDay(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, mondayRules)
}

func TestService_SetWeeklyScheduleReadersNeverSeeEmptySchedule(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, 1, &models.RuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	weekly := &models.WeeklyScheduleRequest{Rules: []models.RuleRequest{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00"},
	}}

	done := make(chan struct{})
	var (
		wg         sync.WaitGroup
		emptyReads int
		readErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			rules, err := store.Availability().ListActiveByDoctor(ctx, 1)
			if err != nil {
				readErr = err
				return
			}
			if len(rules) == 0 {
				emptyReads++
			}
		}
	}()

	for i := 0; i < 200; i++ {
		_, err := svc.SetWeeklySchedule(ctx, 1, weekly)
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()

	require.NoError(t, readErr)
	assert.Zero(t, emptyReads)
}

func TestService_SetWeeklyScheduleInvalidRuleKeepsOldSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, 1, &models.RuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	_, err = svc.SetWeeklySchedule(ctx, 1, &models.WeeklyScheduleRequest{Rules: []models.RuleRequest{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	schedule, err := svc.GetSchedule(ctx, 1)
	require.NoError(t, err)
	require.Len(t, schedule.Rules, 1)
	assert.Equal(t, 1, schedule.Rules[0].DayOfWeek)
}

func TestService_DeleteAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rule, err := svc.SetAvailability(ctx, 1, &models.RuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAvailability(ctx, rule.ID))
	assert.ErrorIs(t, svc.DeleteAvailability(ctx, rule.ID), ErrAvailabilityNotFound)
}
