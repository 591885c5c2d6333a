package check_slot_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/pkg/types"
)

// UseCase авторитетная проверка, можно ли записаться к врачу на момент времени
// Используется перед записью и переносом, независимо от генерации слотов
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	timeOffChecker   TimeOffChecker
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	timeOffChecker TimeOffChecker,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		timeOffChecker:   timeOffChecker,
		location:         loc,
		timeProvider:     &RealTimeProvider{Location: loc},
		logger:           logger,
	}
}

// Execute выполняет проверку
// Если ctx несёт транзакцию, все чтения выполняются в ней
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if req.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}

	at := req.DateTime.In(uc.location)
	resp := &Response{DoctorID: req.DoctorID, DateTime: at}

	// 1. Момент в прошлом записать нельзя
	if at.Before(uc.timeProvider.Now()) {
		resp.Reason = ReasonInPast
		uc.logger.Info("CheckSlot: doctor=%d, at=%s is in the past", req.DoctorID, at.Format(domain.DateTimeFormat))
		return resp, nil
	}

	// 2. Отпуск/закрытие блокирует весь день
	off, err := uc.timeOffChecker.IsOff(ctx, req.DoctorID, at)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to check time off for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to check time off: %v", ErrInternal, err)
	}
	if off {
		resp.Reason = ReasonTimeOff
		uc.logger.Info("CheckSlot: doctor=%d is off on %s", req.DoctorID, at.Format(domain.DateFormat))
		return resp, nil
	}

	// 3. Момент должен попадать в окно [start, end) одного из активных правил дня
	rules, err := uc.availabilityRepo.ListActiveByDoctorAndDay(ctx, req.DoctorID, domain.WeekdayNumber(at))
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get rules for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	rule := findMatchingRule(rules, types.NewTimeString(at))
	if rule == nil {
		resp.Reason = ReasonOutsideSchedule
		uc.logger.Info("CheckSlot: doctor=%d, at=%s is outside of schedule", req.DoctorID, at.Format(domain.DateTimeFormat))
		return resp, nil
	}
	resp.DurationMinutes = rule.SlotDurationMinutes

	// 4. Окно [at, at+duration) не должно пересекаться с активными записями
	conflicts, err := uc.findConflicts(ctx, req.DoctorID, at, rule.SlotDurationMinutes, req.ExcludeAppointmentID)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get appointments for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	if conflicts > 0 {
		resp.Reason = ReasonConflict
		uc.logger.Info("CheckSlot: doctor=%d, at=%s conflicts with %d appointment(s)",
			req.DoctorID, at.Format(domain.DateTimeFormat), conflicts)
		return resp, nil
	}

	resp.Available = true
	return resp, nil
}

func (uc *UseCase) findConflicts(ctx context.Context, doctorID int64, at time.Time, duration int, excludeID *int64) (int, error) {
	// Запись, начавшаяся раньше, может ещё длиться: смотрим назад на максимальную длительность
	from := at.Add(-time.Duration(domain.MaxSlotDurationMinutes) * time.Minute)
	to := at.Add(time.Duration(duration) * time.Minute)

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
		DoctorID:  &doctorID,
		From:      &from,
		To:        &to,
		ExcludeID: excludeID,
	})
	if err != nil {
		return 0, err
	}

	return countOverlapping(at, duration, appointments), nil
}

// findMatchingRule возвращает первое по времени начала правило, окно которого содержит t
func findMatchingRule(rules []*domain.AvailabilityRule, t types.TimeString) *domain.AvailabilityRule {
	var match *domain.AvailabilityRule
	for _, rule := range rules {
		if !rule.Contains(t) {
			continue
		}
		if match == nil || rule.StartTime.IsBefore(match.StartTime) {
			match = rule
		}
	}
	return match
}

// countOverlapping подсчитывает активные записи, пересекающиеся с [start, start+duration)
// Граничные случаи (конец одной записи = начало окна) пересечением не считаются
func countOverlapping(start time.Time, duration int, appointments []*domain.Appointment) int {
	count := 0
	for _, a := range appointments {
		if a.IsActive() && a.Overlaps(start, duration) {
			count++
		}
	}
	return count
}
