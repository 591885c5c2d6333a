package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/availability"
	identityClient "github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/service/availability/models"
)

// Service сервис управления недельным расписанием врачей
type Service struct {
	availabilityRepo   AvailabilityRepository
	identityClient     IdentityServiceClient
	txManager          TransactionManager
	defaultSlotMinutes int
	logger             Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	defaultSlotMinutes int,
	logger Logger,
) *Service {
	if defaultSlotMinutes <= 0 {
		defaultSlotMinutes = domain.DefaultSlotDurationMinutes
	}
	return &Service{
		availabilityRepo:   availabilityRepo,
		identityClient:     identityClient,
		txManager:          txManager,
		defaultSlotMinutes: defaultSlotMinutes,
		logger:             logger,
	}
}

// GetSchedule получает активные правила врача, отсортированные по дню недели и времени начала
func (s *Service) GetSchedule(ctx context.Context, doctorID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for doctor=%d", doctorID)

	rules, err := s.availabilityRepo.ListActiveByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d rules for doctor=%d", len(rules), doctorID)
	return models.FromDomainRuleList(doctorID, rules), nil
}

// SetAvailability создает правило или обновляет существующее, если в запросе указан ID
func (s *Service) SetAvailability(ctx context.Context, doctorID int64, req *models.RuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("SetAvailability: doctor=%d, day=%d, %s-%s", doctorID, req.DayOfWeek, req.StartTime, req.EndTime)

	rule, err := s.toDomainRule(doctorID, req)
	if err != nil {
		s.logger.Warn("SetAvailability: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureDoctorExists(ctx, "SetAvailability", doctorID); err != nil {
		return nil, err
	}

	var saved *domain.AvailabilityRule
	if rule.ID > 0 {
		existing, err := s.availabilityRepo.GetByID(ctx, rule.ID)
		if err != nil {
			return nil, s.mapRepoError("SetAvailability", rule.ID, err)
		}
		if existing.DoctorID != doctorID {
			s.logger.Warn("SetAvailability: rule id=%d belongs to doctor=%d, not %d", rule.ID, existing.DoctorID, doctorID)
			return nil, ErrAvailabilityNotFound
		}

		saved, err = s.availabilityRepo.Update(ctx, rule)
		if err != nil {
			return nil, s.mapRepoError("SetAvailability", rule.ID, err)
		}
	} else {
		saved, err = s.availabilityRepo.Create(ctx, rule)
		if err != nil {
			s.logger.Error("SetAvailability: repository error: %v", err)
			return nil, fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("SetAvailability: saved rule id=%d for doctor=%d", saved.ID, doctorID)
	return models.FromDomainRule(saved), nil
}

// SetWeeklySchedule заменяет все активные правила врача новым набором
// Деактивация и вставка выполняются в одной транзакции, читатели не видят пустого расписания
func (s *Service) SetWeeklySchedule(ctx context.Context, doctorID int64, req *models.WeeklyScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetWeeklySchedule: doctor=%d, rules=%d", doctorID, len(req.Rules))

	rules := make([]*domain.AvailabilityRule, 0, len(req.Rules))
	for i := range req.Rules {
		rule, err := s.toDomainRule(doctorID, &req.Rules[i])
		if err != nil {
			s.logger.Warn("SetWeeklySchedule: validation failed for rule #%d: %v", i, err)
			return nil, err
		}
		// Все правила нового набора создаются заново и активны
		rule.ID = 0
		rule.IsActive = true
		rules = append(rules, rule)
	}

	if err := s.ensureDoctorExists(ctx, "SetWeeklySchedule", doctorID); err != nil {
		return nil, err
	}

	created := make([]*domain.AvailabilityRule, 0, len(rules))
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		deactivated, err := s.availabilityRepo.DeactivateAllByDoctor(txCtx, doctorID)
		if err != nil {
			return fmt.Errorf("%w: SetWeeklySchedule - deactivate: %v", ErrInternal, err)
		}
		s.logger.Info("SetWeeklySchedule: deactivated %d rules for doctor=%d", deactivated, doctorID)

		for _, rule := range rules {
			saved, err := s.availabilityRepo.Create(txCtx, rule)
			if err != nil {
				return fmt.Errorf("%w: SetWeeklySchedule - create: %v", ErrInternal, err)
			}
			created = append(created, saved)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetWeeklySchedule: transaction failed for doctor=%d: %v", doctorID, err)
		return nil, err
	}

	s.logger.Info("SetWeeklySchedule: doctor=%d now has %d active rules", doctorID, len(created))

	// Возвращаем набор в каноническом порядке (день недели, время начала)
	schedule, err := s.availabilityRepo.ListActiveByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("SetWeeklySchedule: failed to reload schedule for doctor=%d: %v", doctorID, err)
		return models.FromDomainRuleList(doctorID, created), nil
	}

	return models.FromDomainRuleList(doctorID, schedule), nil
}

// DeleteAvailability физически удаляет правило
func (s *Service) DeleteAvailability(ctx context.Context, ruleID int64) error {
	s.logger.Info("DeleteAvailability: deleting rule id=%d", ruleID)

	if err := s.availabilityRepo.Delete(ctx, ruleID); err != nil {
		return s.mapRepoError("DeleteAvailability", ruleID, err)
	}

	s.logger.Info("DeleteAvailability: successfully deleted rule id=%d", ruleID)
	return nil
}

func (s *Service) ensureDoctorExists(ctx context.Context, op string, doctorID int64) error {
	if _, err := s.identityClient.GetDoctor(ctx, doctorID); err != nil {
		if errors.Is(err, identityClient.ErrDoctorNotFound) {
			s.logger.Warn("%s: doctor id=%d not found", op, doctorID)
			return ErrDoctorNotFound
		}
		s.logger.Error("%s: failed to get doctor id=%d: %v", op, doctorID, err)
		return fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) mapRepoError(op string, ruleID int64, err error) error {
	if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
		s.logger.Warn("%s: rule id=%d not found", op, ruleID)
		return ErrAvailabilityNotFound
	}
	s.logger.Error("%s: repository error for rule id=%d: %v", op, ruleID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
