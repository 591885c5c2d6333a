package availability

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	Update(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListActiveByDoctor(ctx context.Context, doctorID int64) ([]*domain.AvailabilityRule, error)
	DeactivateAllByDoctor(ctx context.Context, doctorID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*identityservice.Doctor, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
