package get_slots_range

import (
	"context"

	getAvailableSlots "github.com/m04kA/MedicalBookingService/internal/usecase/get_available_slots"
)

type GetSlotsRangeUseCase interface {
	ExecuteRange(ctx context.Context, req *getAvailableSlots.RangeRequest) (*getAvailableSlots.RangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
