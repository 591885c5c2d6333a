package remove_time_off

import "context"

type TimeOffService interface {
	RemoveTimeOff(ctx context.Context, periodID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
