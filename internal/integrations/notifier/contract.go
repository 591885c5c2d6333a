package notifier

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
)

// Publisher транспорт для доставки событий
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// ParticipantResolver источник имён и адресов врача и пациента
type ParticipantResolver interface {
	GetDoctor(ctx context.Context, doctorID int64) (*identityservice.Doctor, error)
	GetPatient(ctx context.Context, patientID int64) (*identityservice.Patient, error)
}

// MetricsRecorder учёт результатов отправки уведомлений
type MetricsRecorder interface {
	RecordNotification(event, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
