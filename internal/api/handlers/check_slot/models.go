package check_slot

import (
	"github.com/m04kA/MedicalBookingService/internal/domain"
	checkSlot "github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	DoctorID        int64  `json:"doctorId"`
	DateTime        string `json:"dateTime"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"` // in_past | time_off | outside_schedule | conflict
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		DoctorID:        resp.DoctorID,
		DateTime:        resp.DateTime.Format(domain.DateTimeFormat),
		Available:       resp.Available,
		Reason:          resp.Reason,
		DurationMinutes: resp.DurationMinutes,
	}
}
