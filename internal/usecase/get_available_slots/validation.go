package get_available_slots

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateRangeRequest валидирует запрос на период
func validateRangeRequest(req *RangeRequest, maxRangeDays int) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}

	if days := daysBetween(req.StartDate, req.EndDate) + 1; days > maxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxRangeDays)
	}

	return nil
}
