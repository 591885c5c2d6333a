package set_availability

import (
	"context"

	"github.com/m04kA/MedicalBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetAvailability(ctx context.Context, doctorID int64, req *models.RuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
