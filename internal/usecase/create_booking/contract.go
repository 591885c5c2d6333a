package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// LockDoctor блокирует расписание врача до конца транзакции
	LockDoctor(ctx context.Context, doctorID int64) error
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// DoctorPatientRepository интерфейс репозитория связей врач-пациент
type DoctorPatientRepository interface {
	Ensure(ctx context.Context, doctorID, patientID int64) error
}

// SlotChecker авторитетная проверка момента перед записью
type SlotChecker interface {
	Execute(ctx context.Context, req *check_slot_availability.Request) (*check_slot_availability.Response, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*identityservice.Doctor, error)
	GetPatient(ctx context.Context, patientID int64) (*identityservice.Patient, error)
}

// Notifier отправка уведомлений о событиях записи (fire-and-forget)
type Notifier interface {
	Notify(ctx context.Context, event domain.AppointmentEvent)
}

// MetricsRecorder учёт операций с записями
type MetricsRecorder interface {
	RecordBooking(operation, result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
