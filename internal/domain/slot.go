package domain

import (
	"time"

	"github.com/m04kA/MedicalBookingService/pkg/types"
)

// TimeSlot сгенерированный слот приёма, не хранится
type TimeSlot struct {
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	DateTime    time.Time
	IsAvailable bool
	DisplayTime string // "09:00 AM"
}

// DaySlots слоты одного дня
type DaySlots struct {
	Date  time.Time
	Slots []TimeSlot
}

// HasAvailable возвращает true, если хотя бы один слот свободен
func (d *DaySlots) HasAvailable() bool {
	for _, s := range d.Slots {
		if s.IsAvailable {
			return true
		}
	}
	return false
}
