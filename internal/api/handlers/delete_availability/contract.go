package delete_availability

import "context"

type AvailabilityService interface {
	DeleteAvailability(ctx context.Context, ruleID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
