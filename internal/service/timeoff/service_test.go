package timeoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/internal/infra/storage/memory"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/service/timeoff/models"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
	"github.com/m04kA/MedicalBookingService/pkg/ptr"
)

type fakeIdentity struct{}

func (fakeIdentity) GetDoctor(_ context.Context, doctorID int64) (*identityservice.Doctor, error) {
	if doctorID != 1 {
		return nil, identityservice.ErrDoctorNotFound
	}
	return &identityservice.Doctor{ID: doctorID}, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc := NewService(memory.NewStore().TimeOff(), fakeIdentity{}, time.UTC, logger.Nop())
	svc.timeProvider = fixedTime{now: time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)}
	return svc
}

func TestService_AddTimeOffAndIsOff(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	period, err := svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{
		StartDate: "2030-01-14",
		EndDate:   "2030-01-16",
		Reason:    ptr.Ptr("  vacation "),
	})
	require.NoError(t, err)
	assert.Equal(t, "2030-01-14", period.StartDate)
	require.NotNil(t, period.Reason)
	assert.Equal(t, "vacation", *period.Reason)

	tests := []struct {
		date string
		want bool
	}{
		{date: "2030-01-13", want: false},
		{date: "2030-01-14", want: true},
		{date: "2030-01-16", want: true},
		{date: "2030-01-17", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)

			off, err := svc.IsOff(ctx, 1, date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, off)
		})
	}
}

func TestService_AddTimeOffErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddTimeOff(ctx, 2, &models.AddTimeOffRequest{StartDate: "2030-01-14", EndDate: "2030-01-14"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{StartDate: "2030-01-15", EndDate: "2030-01-14"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{StartDate: "15.01.2030", EndDate: "2030-01-16"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_FindOverlappingAndUpcoming(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	past, err := svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{StartDate: "2030-01-01", EndDate: "2030-01-05"})
	require.NoError(t, err)
	current, err := svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{StartDate: "2030-01-09", EndDate: "2030-01-11"})
	require.NoError(t, err)
	future, err := svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{StartDate: "2030-02-01", EndDate: "2030-02-03"})
	require.NoError(t, err)

	overlapping, err := svc.FindOverlapping(ctx, 1, "2030-01-05", "2030-01-09")
	require.NoError(t, err)
	require.Len(t, overlapping.Periods, 2)
	assert.Equal(t, past.ID, overlapping.Periods[0].ID)
	assert.Equal(t, current.ID, overlapping.Periods[1].ID)

	upcoming, err := svc.GetUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, upcoming.Periods, 2)
	assert.Equal(t, current.ID, upcoming.Periods[0].ID)
	assert.Equal(t, future.ID, upcoming.Periods[1].ID)
}

func TestService_RemoveTimeOff(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	period, err := svc.AddTimeOff(ctx, 1, &models.AddTimeOffRequest{StartDate: "2030-01-14", EndDate: "2030-01-14"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveTimeOff(ctx, period.ID))
	assert.ErrorIs(t, svc.RemoveTimeOff(ctx, period.ID), ErrTimeOffNotFound)
}
