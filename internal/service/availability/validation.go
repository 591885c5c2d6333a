package availability

import (
	"fmt"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/internal/service/availability/models"
	"github.com/m04kA/MedicalBookingService/pkg/types"
)

// toDomainRule валидирует правило из запроса и применяет значения по умолчанию
func (s *Service) toDomainRule(doctorID int64, req *models.RuleRequest) (*domain.AvailabilityRule, error) {
	if req.DayOfWeek < domain.MinDayOfWeek || req.DayOfWeek > domain.MaxDayOfWeek {
		return nil, fmt.Errorf("%w: dayOfWeek must be between %d and %d", ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	duration := s.defaultSlotMinutes
	if req.SlotDurationMinutes != nil {
		duration = *req.SlotDurationMinutes
	}
	if duration < domain.MinSlotDurationMinutes || duration > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule := &domain.AvailabilityRule{
		DoctorID:            doctorID,
		DayOfWeek:           req.DayOfWeek,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: duration,
		IsActive:            isActive,
	}
	if req.ID != nil {
		rule.ID = *req.ID
	}

	return rule, nil
}
