package timeoff

import (
	"context"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
)

// TimeOffRepository интерфейс репозитория периодов отсутствия
type TimeOffRepository interface {
	Create(ctx context.Context, period *domain.TimeOffPeriod) (*domain.TimeOffPeriod, error)
	Delete(ctx context.Context, id int64) error
	ExistsOnDate(ctx context.Context, doctorID int64, date time.Time) (bool, error)
	ListOverlapping(ctx context.Context, doctorID int64, from, to time.Time) ([]*domain.TimeOffPeriod, error)
	ListUpcoming(ctx context.Context, doctorID int64, from time.Time) ([]*domain.TimeOffPeriod, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*identityservice.Doctor, error)
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
