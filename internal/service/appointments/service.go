package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/MedicalBookingService/internal/service/appointments/models"
	"github.com/m04kA/MedicalBookingService/pkg/ptr"
)

// Service сервис для работы с существующими записями: отмена, подтверждение, выборки
type Service struct {
	appointmentRepo   AppointmentRepository
	doctorPatientRepo DoctorPatientRepository
	txManager         TransactionManager
	notifier          Notifier
	metrics           MetricsRecorder
	location          *time.Location
	timeProvider      TimeProvider
	maxRangeDays      int
	logger            Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	doctorPatientRepo DoctorPatientRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	loc *time.Location,
	maxRangeDays int,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &Service{
		appointmentRepo:   appointmentRepo,
		doctorPatientRepo: doctorPatientRepo,
		txManager:         txManager,
		notifier:          notifier,
		metrics:           metrics,
		location:          loc,
		timeProvider:      &RealTimeProvider{Location: loc},
		maxRangeDays:      maxRangeDays,
		logger:            logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// Cancel отменяет запись и добавляет причину в заметки
// Повторная отмена не является ошибкой: состояние применяется заново, причина снова дописывается в notes,
// уведомление не отправляется
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	reason = strings.TrimSpace(reason)
	if len(reason) > domain.MaxReasonLength {
		s.logger.Warn("Cancel: reason is too long (%d) for appointment id=%d", len(reason), id)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	var (
		result           *domain.Appointment
		alreadyCancelled bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		alreadyCancelled = appointment.IsCancelled
		appointment.Cancel(reason)

		updated, err := s.appointmentRepo.Update(txCtx, appointment)
		if err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		s.recordBooking("cancel", err)
		return nil, err
	}

	s.recordBooking("cancel", nil)

	if alreadyCancelled {
		s.logger.Info("Cancel: appointment id=%d was already cancelled", id)
		return models.FromDomainAppointment(result), nil
	}

	event := domain.AppointmentEvent{
		Type:            domain.EventAppointmentCancelled,
		AppointmentID:   result.ID,
		Doctor:          domain.Participant{ID: result.DoctorID},
		Patient:         domain.Participant{ID: result.PatientID},
		AppointmentDate: result.AppointmentDate,
		OccurredAt:      s.timeProvider.Now(),
	}
	if reason != "" {
		event.Reason = ptr.Ptr(reason)
	}
	s.notifier.Notify(ctx, event)

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(result), nil
}

// Confirm подтверждает запись врачом
// Доступность слота повторно не проверяется; отменённую запись подтвердить нельзя
func (s *Service) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d", id)

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Confirm", id, err)
		}

		if !appointment.CanBeConfirmed() {
			s.logger.Warn("Confirm: appointment id=%d is cancelled", id)
			return ErrInvalidStateTransition
		}

		appointment.Confirm()

		updated, err := s.appointmentRepo.Update(txCtx, appointment)
		if err != nil {
			return s.mapRepoError("Confirm", id, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		s.recordBooking("confirm", err)
		return nil, err
	}

	s.recordBooking("confirm", nil)

	s.notifier.Notify(ctx, domain.AppointmentEvent{
		Type:            domain.EventAppointmentConfirmed,
		AppointmentID:   result.ID,
		Doctor:          domain.Participant{ID: result.DoctorID},
		Patient:         domain.Participant{ID: result.PatientID},
		AppointmentDate: result.AppointmentDate,
		OccurredAt:      s.timeProvider.Now(),
	})

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)
	return models.FromDomainAppointment(result), nil
}

// GetPatientUpcoming получает будущие неотменённые записи пациента по возрастанию даты
func (s *Service) GetPatientUpcoming(ctx context.Context, patientID int64) (*models.AppointmentListResponse, error) {
	now := s.timeProvider.Now()
	s.logger.Info("GetPatientUpcoming: patient=%d", patientID)

	all, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{PatientID: &patientID})
	if err != nil {
		s.logger.Error("GetPatientUpcoming: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: GetPatientUpcoming - repository error: %v", ErrInternal, err)
	}

	upcoming := make([]*domain.Appointment, 0, len(all))
	for _, a := range all {
		if a.IsActive() && a.AppointmentDate.After(now) {
			upcoming = append(upcoming, a)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].AppointmentDate.Before(upcoming[j].AppointmentDate)
	})

	s.logger.Info("GetPatientUpcoming: found %d appointments for patient=%d", len(upcoming), patientID)
	return models.FromDomainAppointmentList(upcoming), nil
}

// GetPatientHistory получает прошедшие и отменённые записи пациента, по убыванию даты приёма
func (s *Service) GetPatientHistory(ctx context.Context, patientID int64) (*models.AppointmentListResponse, error) {
	now := s.timeProvider.Now()
	s.logger.Info("GetPatientHistory: patient=%d", patientID)

	all, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{PatientID: &patientID, IncludeCancelled: true})
	if err != nil {
		s.logger.Error("GetPatientHistory: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: GetPatientHistory - repository error: %v", ErrInternal, err)
	}

	history := make([]*domain.Appointment, 0, len(all))
	for _, a := range all {
		if a.IsCancelled || a.AppointmentDate.Before(now) {
			history = append(history, a)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		if !history[i].AppointmentDate.Equal(history[j].AppointmentDate) {
			return history[i].AppointmentDate.After(history[j].AppointmentDate)
		}
		return history[i].ID > history[j].ID
	})

	s.logger.Info("GetPatientHistory: found %d appointments for patient=%d", len(history), patientID)
	return models.FromDomainAppointmentList(history), nil
}

// GetDoctorAppointments получает неотменённые записи врача за период дат [start, end]
func (s *Service) GetDoctorAppointments(ctx context.Context, doctorID int64, start, end string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetDoctorAppointments: doctor=%d, %s..%s", doctorID, start, end)

	from, err := time.ParseInLocation(domain.DateFormat, start, s.location)
	if err != nil {
		s.logger.Warn("GetDoctorAppointments: invalid start date %q", start)
		return nil, fmt.Errorf("%w: invalid start date %q", ErrInvalidInput, start)
	}
	to, err := time.ParseInLocation(domain.DateFormat, end, s.location)
	if err != nil {
		s.logger.Warn("GetDoctorAppointments: invalid end date %q", end)
		return nil, fmt.Errorf("%w: invalid end date %q", ErrInvalidInput, end)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}
	if to.Sub(from) > time.Duration(s.maxRangeDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, s.maxRangeDays)
	}

	// Конец диапазона включительно: до последней наносекунды дня end
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		DoctorID: &doctorID,
		From:     &from,
		To:       &to,
	})
	if err != nil {
		s.logger.Error("GetDoctorAppointments: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorAppointments: found %d appointments for doctor=%d", len(appointments), doctorID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetDoctorPatients получает пациентов, которые когда-либо записывались к врачу
func (s *Service) GetDoctorPatients(ctx context.Context, doctorID int64) (*models.PatientListResponse, error) {
	s.logger.Info("GetDoctorPatients: doctor=%d", doctorID)

	patientIDs, err := s.doctorPatientRepo.ListPatientIDs(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetDoctorPatients: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorPatients - repository error: %v", ErrInternal, err)
	}

	return &models.PatientListResponse{DoctorID: doctorID, PatientIDs: patientIDs}, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) recordBooking(operation string, err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.RecordBooking(operation, "success")
	case errors.Is(err, ErrInternal):
		s.metrics.RecordBooking(operation, "error")
	default:
		s.metrics.RecordBooking(operation, "rejected")
	}
}
