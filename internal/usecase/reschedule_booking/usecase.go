package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
)

const operation = "reschedule"

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotChecker     SlotChecker
	txManager       TransactionManager
	notifier        Notifier
	metrics         MetricsRecorder
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotChecker SlotChecker,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotChecker:     slotChecker,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		location:        loc,
		timeProvider:    &RealTimeProvider{Location: loc},
		logger:          logger,
	}
}

// Execute переносит запись на новый момент того же врача
// Отменённая запись не изменяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	result, previous, err := uc.execute(ctx, req)
	uc.recordBooking(err)
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, domain.AppointmentEvent{
		Type:            domain.EventAppointmentRescheduled,
		AppointmentID:   result.ID,
		Doctor:          domain.Participant{ID: result.DoctorID},
		Patient:         domain.Participant{ID: result.PatientID},
		AppointmentDate: result.AppointmentDate,
		PreviousDate:    &previous,
		Reason:          result.Reason,
		OccurredAt:      uc.timeProvider.Now(),
	})

	return result, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, time.Time, error) {
	var previous time.Time

	if req.AppointmentID <= 0 {
		return nil, previous, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.NewDateTime.IsZero() {
		return nil, previous, fmt.Errorf("%w: newDateTime is required", ErrInvalidInput)
	}

	newAt := req.NewDateTime.In(uc.location)
	uc.logger.Info("RescheduleBooking: appointment=%d, newAt=%s", req.AppointmentID, newAt.Format(domain.DateTimeFormat))

	if newAt.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("RescheduleBooking: newAt=%s is in the past", newAt.Format(domain.DateTimeFormat))
		return nil, previous, fmt.Errorf("%w: newDateTime is in the past", ErrInvalidInput)
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Запись под блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleBooking: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2. Отменённую запись перенести нельзя
		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: appointment id=%d is cancelled", req.AppointmentID)
			return ErrInvalidStateTransition
		}

		// 3. Конкурентные записи к этому врачу ждут конца транзакции
		if err := uc.appointmentRepo.LockDoctor(txCtx, appointment.DoctorID); err != nil {
			uc.logger.Error("RescheduleBooking: failed to lock doctor=%d: %v", appointment.DoctorID, err)
			return fmt.Errorf("%w: failed to lock doctor: %v", ErrInternal, err)
		}

		// 4. Проверка нового момента без учёта самой записи
		check, err := uc.slotChecker.Execute(txCtx, &check_slot_availability.Request{
			DoctorID:             appointment.DoctorID,
			DateTime:             newAt,
			ExcludeAppointmentID: &appointment.ID,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("RescheduleBooking: slot doctor=%d, at=%s not available: %s",
				appointment.DoctorID, newAt.Format(domain.DateTimeFormat), check.Reason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check.Reason)
		}

		// 5. Перенос с записью в журнал
		previous = appointment.AppointmentDate
		appointment.Reschedule(newAt, check.DurationMinutes)

		updated, err := uc.appointmentRepo.Update(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
				uc.logger.Warn("RescheduleBooking: duplicate slot doctor=%d, at=%s", appointment.DoctorID, newAt.Format(domain.DateTimeFormat))
				return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check_slot_availability.ReasonConflict)
			}
			uc.logger.Error("RescheduleBooking: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, previous, err
	}

	uc.logger.Info("RescheduleBooking: appointment id=%d moved from %s to %s", result.ID,
		previous.Format(domain.DateTimeFormat), result.AppointmentDate.Format(domain.DateTimeFormat))

	return result, previous, nil
}

func (uc *UseCase) recordBooking(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.RecordBooking(operation, "success")
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.RecordBooking(operation, "conflict")
	case errors.Is(err, ErrInternal):
		uc.metrics.RecordBooking(operation, "error")
	default:
		uc.metrics.RecordBooking(operation, "rejected")
	}
}
