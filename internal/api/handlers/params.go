package handlers

import (
	"errors"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

var errInvalidDateTime = errors.New("handlers: invalid date-time")

// ParseDate разбирает дату YYYY-MM-DD в часовом поясе клиники
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, value, loc)
}

// ParseDateTime разбирает момент времени
// Без смещения ("2025-10-15T10:00:00", "2025-10-15T10:00") считается временем клиники, RFC3339 переводится в него
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{domain.DateTimeFormat, domain.DateTimeShortFormat} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, errInvalidDateTime
}
