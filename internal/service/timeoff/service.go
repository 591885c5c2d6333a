package timeoff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	timeoffRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/timeoff"
	identityClient "github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/service/timeoff/models"
)

// Service сервис периодов отсутствия врачей (отпуска, закрытия)
type Service struct {
	timeOffRepo    TimeOffRepository
	identityClient IdentityServiceClient
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса
// Даты из запросов интерпретируются в часовом поясе loc
func NewService(
	timeOffRepo TimeOffRepository,
	identityClient IdentityServiceClient,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		timeOffRepo:    timeOffRepo,
		identityClient: identityClient,
		location:       loc,
		timeProvider:   &RealTimeProvider{Location: loc},
		logger:         logger,
	}
}

// AddTimeOff добавляет период отсутствия врача
func (s *Service) AddTimeOff(ctx context.Context, doctorID int64, req *models.AddTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("AddTimeOff: doctor=%d, %s..%s", doctorID, req.StartDate, req.EndDate)

	startDate, endDate, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("AddTimeOff: validation failed: %v", err)
		return nil, err
	}

	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len(trimmed) > domain.MaxReasonLength {
			s.logger.Warn("AddTimeOff: reason is too long (%d)", len(trimmed))
			return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	if _, err := s.identityClient.GetDoctor(ctx, doctorID); err != nil {
		if errors.Is(err, identityClient.ErrDoctorNotFound) {
			s.logger.Warn("AddTimeOff: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("AddTimeOff: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	created, err := s.timeOffRepo.Create(ctx, &domain.TimeOffPeriod{
		DoctorID:  doctorID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
	})
	if err != nil {
		s.logger.Error("AddTimeOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddTimeOff: created period id=%d for doctor=%d", created.ID, doctorID)
	return models.FromDomainTimeOff(created), nil
}

// RemoveTimeOff удаляет период отсутствия
func (s *Service) RemoveTimeOff(ctx context.Context, id int64) error {
	s.logger.Info("RemoveTimeOff: deleting period id=%d", id)

	if err := s.timeOffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("RemoveTimeOff: period id=%d not found", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("RemoveTimeOff: repository error for period id=%d: %v", id, err)
		return fmt.Errorf("%w: RemoveTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveTimeOff: successfully deleted period id=%d", id)
	return nil
}

// IsOff проверяет, что дата попадает в период отсутствия врача
func (s *Service) IsOff(ctx context.Context, doctorID int64, date time.Time) (bool, error) {
	off, err := s.timeOffRepo.ExistsOnDate(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("IsOff: repository error for doctor=%d: %v", doctorID, err)
		return false, fmt.Errorf("%w: IsOff - repository error: %v", ErrInternal, err)
	}
	return off, nil
}

// FindOverlapping получает периоды, пересекающиеся с диапазоном дат [start, end]
func (s *Service) FindOverlapping(ctx context.Context, doctorID int64, start, end string) (*models.TimeOffListResponse, error) {
	s.logger.Info("FindOverlapping: doctor=%d, %s..%s", doctorID, start, end)

	from, to, err := s.parseRange(start, end)
	if err != nil {
		s.logger.Warn("FindOverlapping: validation failed: %v", err)
		return nil, err
	}

	periods, err := s.timeOffRepo.ListOverlapping(ctx, doctorID, from, to)
	if err != nil {
		s.logger.Error("FindOverlapping: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: FindOverlapping - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeOffList(doctorID, periods), nil
}

// GetUpcoming получает периоды, которые ещё не закончились, по возрастанию даты начала
func (s *Service) GetUpcoming(ctx context.Context, doctorID int64) (*models.TimeOffListResponse, error) {
	today := domain.DateOnly(s.timeProvider.Now())
	s.logger.Info("GetUpcoming: doctor=%d, from=%s", doctorID, today.Format(domain.DateFormat))

	periods, err := s.timeOffRepo.ListUpcoming(ctx, doctorID, today)
	if err != nil {
		s.logger.Error("GetUpcoming: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeOffList(doctorID, periods), nil
}

func (s *Service) parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(domain.DateFormat, start, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", ErrInvalidInput, start)
	}

	to, err := time.ParseInLocation(domain.DateFormat, end, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", ErrInvalidInput, end)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}

	return from, to, nil
}
