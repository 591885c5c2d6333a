package notifier

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

const defaultPublishTimeout = 5 * time.Second

// Dispatcher асинхронно публикует события записей
// Ошибки доставки только логируются и учитываются в метриках, вызывающий код их не видит
type Dispatcher struct {
	publisher Publisher
	resolver  ParticipantResolver
	timeout   time.Duration
	metrics   MetricsRecorder
	log       Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер уведомлений
// resolver и metrics могут быть nil
func NewDispatcher(publisher Publisher, resolver ParticipantResolver, timeout time.Duration, metrics MetricsRecorder, log Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Dispatcher{
		publisher: publisher,
		resolver:  resolver,
		timeout:   timeout,
		metrics:   metrics,
		log:       log,
	}
}

// Notify ставит событие на отправку и сразу возвращает управление
// Отправка не зависит от отмены ctx запроса
func (d *Dispatcher) Notify(_ context.Context, event domain.AppointmentEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notifier: %v, dropping event=%s appointment=%d", ErrDispatcherClosed, event.Type, event.AppointmentID)
		d.record(event.Type, "dropped")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.publish(event)
	}()
}

func (d *Dispatcher) publish(event domain.AppointmentEvent) {
	defer func() {
		if p := recover(); p != nil {
			d.log.Error("Notifier: panic while publishing event=%s appointment=%d: %v", event.Type, event.AppointmentID, p)
			d.record(event.Type, "error")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	d.resolveParticipants(ctx, &event)

	payload, err := json.Marshal(event)
	if err != nil {
		d.log.Error("Notifier: failed to marshal event=%s appointment=%d: %v", event.Type, event.AppointmentID, err)
		d.record(event.Type, "error")
		return
	}

	if err := d.publisher.Publish(ctx, string(event.Type), payload); err != nil {
		d.log.Error("Notifier: failed to publish event=%s appointment=%d: %v", event.Type, event.AppointmentID, err)
		d.record(event.Type, "error")
		return
	}

	d.log.Info("Notifier: published event=%s appointment=%d", event.Type, event.AppointmentID)
	d.record(event.Type, "success")
}

// resolveParticipants дополняет событие контактами, если их не передали
// Ошибка получения контактов не мешает отправке: событие уйдёт только с ID
func (d *Dispatcher) resolveParticipants(ctx context.Context, event *domain.AppointmentEvent) {
	if d.resolver == nil {
		return
	}

	if event.Doctor.Email == "" && event.Doctor.ID > 0 {
		doctor, err := d.resolver.GetDoctor(ctx, event.Doctor.ID)
		if err != nil {
			d.log.Warn("Notifier: failed to resolve doctor=%d for event=%s: %v", event.Doctor.ID, event.Type, err)
		} else {
			event.Doctor = domain.Participant{
				ID:             doctor.ID,
				Name:           doctor.Name,
				Email:          doctor.Email,
				Specialization: doctor.Specialization,
			}
		}
	}

	if event.Patient.Email == "" && event.Patient.ID > 0 {
		patient, err := d.resolver.GetPatient(ctx, event.Patient.ID)
		if err != nil {
			d.log.Warn("Notifier: failed to resolve patient=%d for event=%s: %v", event.Patient.ID, event.Type, err)
		} else {
			event.Patient = domain.Participant{
				ID:    patient.ID,
				Name:  patient.Name,
				Email: patient.Email,
			}
		}
	}
}

func (d *Dispatcher) record(eventType domain.AppointmentEventType, result string) {
	if d.metrics != nil {
		d.metrics.RecordNotification(string(eventType), result)
	}
}

// Close дожидается отправки поставленных событий и закрывает publisher
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()

	return d.publisher.Close()
}
