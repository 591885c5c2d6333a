package domain

import (
	"time"

	"github.com/m04kA/MedicalBookingService/pkg/types"
)

// AvailabilityRule еженедельное окно приёма врача
// Несколько активных правил на один день допустимы и могут пересекаться
type AvailabilityRule struct {
	ID                  int64
	DoctorID            int64
	DayOfWeek           int // 1 = понедельник ... 7 = воскресенье
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Contains возвращает true, если t попадает в окно [StartTime, EndTime)
func (r *AvailabilityRule) Contains(t types.TimeString) bool {
	return !t.IsBefore(r.StartTime) && t.IsBefore(r.EndTime)
}

// DayName возвращает название дня недели на английском
func (r *AvailabilityRule) DayName() string {
	return DayName(r.DayOfWeek)
}

// WeekdayNumber возвращает номер дня недели 1..7 (понедельник = 1)
func WeekdayNumber(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayName возвращает название дня недели по номеру 1..7
func DayName(dayOfWeek int) string {
	if dayOfWeek < MinDayOfWeek || dayOfWeek > MaxDayOfWeek {
		return ""
	}
	return time.Weekday(dayOfWeek % 7).String()
}
