package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// generateTimeSlots генерирует слоты дня по всем правилам
// Для каждого правила слоты идут от StartTime с шагом SlotDurationMinutes, пока current+duration <= EndTime.
// Пересекающиеся правила не объединяются: слоты могут дублироваться.
// Слот свободен, если он не в прошлом относительно now и не пересекается с активной записью
func generateTimeSlots(
	rules []*domain.AvailabilityRule,
	date time.Time,
	now time.Time,
	appointments []*domain.Appointment,
) ([]domain.TimeSlot, error) {
	day := domain.DateOnly(date)
	slots := make([]domain.TimeSlot, 0)

	for _, rule := range rules {
		duration := rule.SlotDurationMinutes
		if duration <= 0 {
			continue
		}

		current := rule.StartTime
		for current.IsBefore(rule.EndTime) {
			slotEnd, err := current.AddMinutes(duration)
			if err != nil {
				// Слот выходит за пределы суток
				break
			}
			if slotEnd.IsAfter(rule.EndTime) {
				break
			}

			start := current.On(day)
			slots = append(slots, domain.TimeSlot{
				Date:        day,
				StartTime:   current,
				EndTime:     slotEnd,
				DateTime:    start,
				IsAvailable: !start.Before(now) && !isBooked(start, duration, appointments),
				DisplayTime: start.Format(domain.DisplayTimeFormat),
			})

			current = slotEnd
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// isBooked проверяет, пересекается ли слот [start, start+duration) с активной записью
// Граничные случаи (запись заканчивается ровно в начале слота) пересечением не считаются
func isBooked(start time.Time, duration int, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if a.IsActive() && a.Overlaps(start, duration) {
			return true
		}
	}
	return false
}
