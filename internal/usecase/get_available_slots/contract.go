package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	// ListActiveByDoctorAndDay получает активные правила врача на день недели (1..7)
	ListActiveByDoctorAndDay(ctx context.Context, doctorID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// TimeOffChecker проверка, что врач отсутствует в указанную дату
type TimeOffChecker interface {
	IsOff(ctx context.Context, doctorID int64, date time.Time) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе клиники
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
