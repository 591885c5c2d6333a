package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_RescheduleAppendsAudit(t *testing.T) {
	old := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	a := &Appointment{AppointmentDate: old, DurationMinutes: 30, Status: StatusConfirmed}

	a.Reschedule(old.Add(30*time.Minute), 30)

	assert.Equal(t, StatusScheduled, a.Status)
	require.NotNil(t, a.Notes)
	assert.Equal(t, "Rescheduled from 07/01/2030 10:00", *a.Notes)

	a.Reschedule(old.Add(time.Hour), 30)
	assert.Equal(t, "Rescheduled from 07/01/2030 10:00\nRescheduled from 07/01/2030 10:30", *a.Notes)
}

func TestAppointment_CancelIsIdempotent(t *testing.T) {
	a := &Appointment{Status: StatusScheduled}

	a.Cancel("")
	a.Cancel("")

	assert.True(t, a.IsCancelled)
	assert.Equal(t, StatusCancelled, a.Status)
	assert.Nil(t, a.Notes)

	a.Cancel("sick")
	require.NotNil(t, a.Notes)
	assert.Equal(t, "Cancellation reason: sick", *a.Notes)
}

func TestAppointment_Overlaps(t *testing.T) {
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	a := &Appointment{AppointmentDate: start, DurationMinutes: 30}

	tests := []struct {
		name     string
		at       time.Time
		duration int
		want     bool
	}{
		{name: "same start", at: start, duration: 30, want: true},
		{name: "inside", at: start.Add(15 * time.Minute), duration: 30, want: true},
		{name: "adjacent after", at: start.Add(30 * time.Minute), duration: 30, want: false},
		{name: "adjacent before", at: start.Add(-30 * time.Minute), duration: 30, want: false},
		{name: "long slot covering", at: start.Add(-30 * time.Minute), duration: 60, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.at, tt.duration))
		})
	}
}

func TestWeekdayNumberAndDayName(t *testing.T) {
	monday := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2030, 1, 13, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, WeekdayNumber(monday))
	assert.Equal(t, 7, WeekdayNumber(sunday))
	assert.Equal(t, "Monday", DayName(1))
	assert.Equal(t, "Sunday", DayName(7))
	assert.Equal(t, "", DayName(8))
}

func TestTimeOffPeriod_CoversAndOverlaps(t *testing.T) {
	p := &TimeOffPeriod{
		StartDate: time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, 1, 9, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.Covers(time.Date(2030, 1, 7, 15, 0, 0, 0, time.UTC)))
	assert.True(t, p.Covers(time.Date(2030, 1, 9, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Covers(time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)))

	assert.True(t, p.Overlaps(time.Date(2030, 1, 9, 0, 0, 0, 0, time.UTC), time.Date(2030, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Overlaps(time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2030, 1, 20, 0, 0, 0, 0, time.UTC)))
}
