package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// UseCase use case для получения слотов врача
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	timeOffChecker   TimeOffChecker
	location         *time.Location
	maxRangeDays     int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	timeOffChecker TimeOffChecker,
	loc *time.Location,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		timeOffChecker:   timeOffChecker,
		location:         loc,
		maxRangeDays:     maxRangeDays,
		timeProvider:     &RealTimeProvider{Location: loc},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := uc.toLocalDate(req.Date)
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s", req.DoctorID, date.Format(domain.DateFormat))

	slots, err := uc.slotsForDate(ctx, req.DoctorID, date, uc.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for doctor=%d, date=%s",
		len(slots), req.DoctorID, date.Format(domain.DateFormat))

	return &Response{
		DoctorID: req.DoctorID,
		Date:     date,
		Slots:    slots,
	}, nil
}

// ExecuteRange получает слоты за период, оставляя только дни со свободными слотами
func (uc *UseCase) ExecuteRange(ctx context.Context, req *RangeRequest) (*RangeResponse, error) {
	start := uc.toLocalDate(req.StartDate)
	end := uc.toLocalDate(req.EndDate)
	normalized := &RangeRequest{DoctorID: req.DoctorID, StartDate: start, EndDate: end}

	if err := validateRangeRequest(normalized, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailableSlotsRange: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlotsRange: doctor=%d, %s..%s",
		req.DoctorID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	now := uc.timeProvider.Now()
	days := make([]domain.DaySlots, 0)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		slots, err := uc.slotsForDate(ctx, req.DoctorID, date, now)
		if err != nil {
			return nil, err
		}

		day := domain.DaySlots{Date: date, Slots: slots}
		if day.HasAvailable() {
			days = append(days, day)
		}
	}

	uc.logger.Info("GetAvailableSlotsRange: %d days with free slots for doctor=%d", len(days), req.DoctorID)

	return &RangeResponse{
		DoctorID:  req.DoctorID,
		StartDate: start,
		EndDate:   end,
		Days:      days,
	}, nil
}

func (uc *UseCase) slotsForDate(ctx context.Context, doctorID int64, date, now time.Time) ([]domain.TimeSlot, error) {
	// 1. Отпуск/закрытие - слотов нет
	off, err := uc.timeOffChecker.IsOff(ctx, doctorID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check time off for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to check time off: %v", ErrInternal, err)
	}
	if off {
		uc.logger.Info("GetAvailableSlots: doctor=%d is off on %s", doctorID, date.Format(domain.DateFormat))
		return []domain.TimeSlot{}, nil
	}

	// 2. Активные правила на день недели
	rules, err := uc.availabilityRepo.ListActiveByDoctorAndDay(ctx, doctorID, domain.WeekdayNumber(date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}
	if len(rules) == 0 {
		return []domain.TimeSlot{}, nil
	}

	// 3. Неотменённые записи врача за день, включая начавшиеся накануне
	dayStart := domain.DateOnly(date)
	from := dayStart.Add(-time.Duration(domain.MaxSlotDurationMinutes) * time.Minute)
	to := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
		DoctorID: &doctorID,
		From:     &from,
		To:       &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Генерация слотов
	slots, err := generateTimeSlots(rules, date, now, appointments)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	return slots, nil
}

// toLocalDate отбрасывает время и переносит календарную дату в часовой пояс клиники
func (uc *UseCase) toLocalDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, uc.location)
}

// daysBetween количество полных суток между календарными датами
func daysBetween(from, to time.Time) int {
	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}
