package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/appointment"
	identityClient "github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
)

const operation = "book"

// UseCase use case для записи пациента к врачу
type UseCase struct {
	appointmentRepo   AppointmentRepository
	doctorPatientRepo DoctorPatientRepository
	slotChecker       SlotChecker
	identityClient    IdentityServiceClient
	txManager         TransactionManager
	notifier          Notifier
	metrics           MetricsRecorder
	location          *time.Location
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorPatientRepo DoctorPatientRepository,
	slotChecker SlotChecker,
	identityClient IdentityServiceClient,
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
		appointmentRepo:   appointmentRepo,
		doctorPatientRepo: doctorPatientRepo,
		slotChecker:       slotChecker,
		identityClient:    identityClient,
		txManager:         txManager,
		notifier:          notifier,
		metrics:           metrics,
		location:          loc,
		timeProvider:      &RealTimeProvider{Location: loc},
		logger:            logger,
	}
}

// Execute выполняет use case записи
// Проверка доступности и вставка выполняются в сериализуемой транзакции под блокировкой врача
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	result, err := uc.execute(ctx, req)
	uc.recordBooking(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	at := req.DateTime.In(uc.location)
	uc.logger.Info("CreateBooking: patient=%d, doctor=%d, at=%s",
		req.PatientID, req.DoctorID, at.Format(domain.DateTimeFormat))

	if err := validateNotInPast(at, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Врач и пациент должны существовать
	doctor, err := uc.identityClient.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, identityClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateBooking: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	patient, err := uc.identityClient.GetPatient(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, identityClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateBooking: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 3. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Конкурентные записи к этому врачу ждут конца транзакции
		if err := uc.appointmentRepo.LockDoctor(txCtx, req.DoctorID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock doctor=%d: %v", req.DoctorID, err)
			return fmt.Errorf("%w: failed to lock doctor: %v", ErrInternal, err)
		}

		// 3.2. Авторитетная проверка момента
		check, err := uc.slotChecker.Execute(txCtx, &check_slot_availability.Request{
			DoctorID: req.DoctorID,
			DateTime: at,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("CreateBooking: slot doctor=%d, at=%s not available: %s",
				req.DoctorID, at.Format(domain.DateTimeFormat), check.Reason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check.Reason)
		}

		// 3.3. Создаём запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			DoctorID:        req.DoctorID,
			PatientID:       req.PatientID,
			AppointmentDate: at,
			DurationMinutes: check.DurationMinutes,
			Status:          domain.StatusScheduled,
			Reason:          normalizeReason(req.Reason),
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateBooking: duplicate slot doctor=%d, at=%s", req.DoctorID, at.Format(domain.DateTimeFormat))
				return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check_slot_availability.ReasonConflict)
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 3.4. Связь врач-пациент
		if err := uc.doctorPatientRepo.Ensure(txCtx, req.DoctorID, req.PatientID); err != nil {
			uc.logger.Error("CreateBooking: failed to link doctor=%d and patient=%d: %v", req.DoctorID, req.PatientID, err)
			return fmt.Errorf("%w: failed to link doctor and patient: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	// 4. Уведомления после фиксации транзакции, ошибки не влияют на результат
	uc.notifier.Notify(ctx, domain.AppointmentEvent{
		Type:          domain.EventAppointmentBooked,
		AppointmentID: result.ID,
		Doctor: domain.Participant{
			ID:             doctor.ID,
			Name:           doctor.Name,
			Email:          doctor.Email,
			Specialization: doctor.Specialization,
		},
		Patient: domain.Participant{
			ID:    patient.ID,
			Name:  patient.Name,
			Email: patient.Email,
		},
		AppointmentDate: result.AppointmentDate,
		Reason:          result.Reason,
		OccurredAt:      uc.timeProvider.Now(),
	})

	return result, nil
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
