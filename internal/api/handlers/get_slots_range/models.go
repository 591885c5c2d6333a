package get_slots_range

import (
	slotsHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/MedicalBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/MedicalBookingService/internal/usecase/get_available_slots"
)

// SlotsRangeResponse HTTP response model
// Days содержит только дни, где есть хотя бы один свободный слот
type SlotsRangeResponse struct {
	DoctorID  int64                                  `json:"doctorId"`
	StartDate string                                 `json:"startDate"`
	EndDate   string                                 `json:"endDate"`
	Days      map[string][]slotsHandler.SlotResponse `json:"days"` // "2025-10-13" -> слоты
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.RangeResponse) *SlotsRangeResponse {
	days := make(map[string][]slotsHandler.SlotResponse, len(resp.Days))
	for _, day := range resp.Days {
		days[day.Date.Format(domain.DateFormat)] = slotsHandler.FromDomainSlots(day.Slots)
	}

	return &SlotsRangeResponse{
		DoctorID:  resp.DoctorID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Days:      days,
	}
}
