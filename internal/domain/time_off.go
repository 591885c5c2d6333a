package domain

import "time"

// TimeOffPeriod отпуск/закрытие врача, границы включительно
type TimeOffPeriod struct {
	ID        int64
	DoctorID  int64
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
	CreatedAt time.Time
}

// Covers возвращает true, если дата попадает в период
func (p *TimeOffPeriod) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Overlaps возвращает true, если период пересекается с диапазоном [from, to]
func (p *TimeOffPeriod) Overlaps(from, to time.Time) bool {
	return !DateOnly(p.StartDate).After(DateOnly(to)) && !DateOnly(p.EndDate).Before(DateOnly(from))
}

// DateOnly обнуляет время, сохраняя часовой пояс
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
