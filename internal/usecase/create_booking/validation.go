package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	// Проверяем, что момент указан
	if req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}

	if req.Reason != nil && len(strings.TrimSpace(*req.Reason)) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateNotInPast проверяет, что момент записи не в прошлом
func validateNotInPast(at, now time.Time) error {
	if at.Before(now) {
		return fmt.Errorf("%w: dateTime %s is in the past", ErrInvalidInput, at.Format(domain.DateTimeFormat))
	}
	return nil
}

// normalizeReason обрезает пробелы, пустая причина становится nil
func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
