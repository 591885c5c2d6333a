package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/internal/infra/storage/memory"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
	"github.com/m04kA/MedicalBookingService/pkg/types"
)

const doctorID int64 = 1

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeTimeOff struct {
	days map[string]bool
}

func (f fakeTimeOff) IsOff(_ context.Context, _ int64, date time.Time) (bool, error) {
	return f.days[date.Format(domain.DateFormat)], nil
}

// 2030-01-14 - понедельник
var monday = time.Date(2030, 1, 14, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	timeOff fakeTimeOff
	uc      *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		store:   memory.NewStore(),
		timeOff: fakeTimeOff{days: map[string]bool{}},
	}
	f.uc = NewUseCase(f.store.Availability(), f.store.Appointments(), f.timeOff, time.UTC, 14, logger.Nop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) addRule(t *testing.T, day int, start, end string, duration int) {
	t.Helper()

	_, err := f.store.Availability().Create(context.Background(), &domain.AvailabilityRule{
		DoctorID:            doctorID,
		DayOfWeek:           day,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		SlotDurationMinutes: duration,
		IsActive:            true,
	})
	require.NoError(t, err)
}

func (f *fixture) book(t *testing.T, at time.Time, duration int) *domain.Appointment {
	t.Helper()

	a, err := f.store.Appointments().Create(context.Background(), &domain.Appointment{
		DoctorID:        doctorID,
		PatientID:       10,
		AppointmentDate: at,
		DurationMinutes: duration,
		Status:          domain.StatusScheduled,
	})
	require.NoError(t, err)
	return a
}

func startTimes(slots []domain.TimeSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.String())
	}
	return result
}

func TestUseCase_Execute_GeneratesSlots(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "12:00", 30)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, startTimes(resp.Slots))
	for _, s := range resp.Slots {
		assert.True(t, s.IsAvailable, s.StartTime)
	}
	assert.Equal(t, "09:00 AM", resp.Slots[0].DisplayTime)
	assert.Equal(t, "09:30", resp.Slots[0].EndTime.String())
	assert.Equal(t, time.Date(2030, 1, 14, 9, 0, 0, 0, time.UTC), resp.Slots[0].DateTime)
}

func TestUseCase_Execute_PartialSlotIsDropped(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "10:10", 30)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, startTimes(resp.Slots))
}

func TestUseCase_Execute_BookedSlotIsUnavailable(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "12:00", 30)
	f.book(t, time.Date(2030, 1, 14, 10, 0, 0, 0, time.UTC), 30)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	for _, s := range resp.Slots {
		assert.Equal(t, s.StartTime != "10:00", s.IsAvailable, s.StartTime)
	}
}

func TestUseCase_Execute_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "10:00", 30)

	a := f.book(t, time.Date(2030, 1, 14, 9, 0, 0, 0, time.UTC), 30)
	a.Cancel("")
	_, err := f.store.Appointments().Update(context.Background(), a)
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].IsAvailable)
}

func TestUseCase_Execute_LongAppointmentBlocksOverlappingSlots(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "11:00", 30)
	f.book(t, time.Date(2030, 1, 14, 9, 15, 0, 0, time.UTC), 60)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)

	available := map[string]bool{}
	for _, s := range resp.Slots {
		available[s.StartTime.String()] = s.IsAvailable
	}
	assert.Equal(t, map[string]bool{"09:00": false, "09:30": false, "10:00": false, "10:30": true}, available)
}

func TestUseCase_Execute_TimeOffReturnsNoSlots(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "12:00", 30)
	f.timeOff.days["2030-01-14"] = true

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_NoRulesReturnsNoSlots(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 2, "09:00", "12:00", 30)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_PastSlotsAreUnavailable(t *testing.T) {
	f := newFixture(t, time.Date(2030, 1, 14, 10, 15, 0, 0, time.UTC))
	f.addRule(t, 1, "09:00", "12:00", 30)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)

	var free []string
	for _, s := range resp.Slots {
		if s.IsAvailable {
			free = append(free, s.StartTime.String())
		}
	}
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, free)
}

func TestUseCase_Execute_OverlappingRulesAreSortedByStart(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "14:00", "15:00", 30)
	f.addRule(t, 1, "09:00", "10:00", 60)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "14:00", "14:30"}, startTimes(resp.Slots))
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	f := newFixture(t, monday)

	_, err := f.uc.Execute(context.Background(), &Request{DoctorID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{DoctorID: doctorID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_ExecuteRange(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -7))
	f.addRule(t, 1, "09:00", "10:00", 30) // понедельник
	f.addRule(t, 3, "09:00", "09:30", 30) // среда
	f.addRule(t, 4, "09:00", "10:00", 30) // четверг, отпуск
	f.timeOff.days["2030-01-17"] = true

	// Среда полностью занята
	f.book(t, time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC), 30)

	resp, err := f.uc.ExecuteRange(context.Background(), &RangeRequest{
		DoctorID:  doctorID,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 6),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, monday, resp.Days[0].Date)
	assert.Len(t, resp.Days[0].Slots, 2)
}

func TestUseCase_ExecuteRange_Errors(t *testing.T) {
	f := newFixture(t, monday)

	_, err := f.uc.ExecuteRange(context.Background(), &RangeRequest{
		DoctorID:  doctorID,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.ExecuteRange(context.Background(), &RangeRequest{
		DoctorID:  doctorID,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 14),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = f.uc.ExecuteRange(context.Background(), &RangeRequest{
		DoctorID:  doctorID,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 13),
	})
	assert.NoError(t, err)
}
