package get_available_slots

import (
	"github.com/m04kA/MedicalBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/MedicalBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID int64          `json:"doctorId"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse модель временного слота
type SlotResponse struct {
	Date        string `json:"date"`        // "2025-10-13"
	StartTime   string `json:"startTime"`   // "09:00"
	EndTime     string `json:"endTime"`     // "09:30"
	DateTime    string `json:"dateTime"`    // "2025-10-13T09:00:00"
	IsAvailable bool   `json:"isAvailable"`
	DisplayTime string `json:"displayTime"` // "09:00 AM"
}

// FromDomainSlots конвертирует слоты в HTTP модели
func FromDomainSlots(slots []domain.TimeSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, SlotResponse{
			Date:        slot.Date.Format(domain.DateFormat),
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			DateTime:    slot.DateTime.Format(domain.DateTimeFormat),
			IsAvailable: slot.IsAvailable,
			DisplayTime: slot.DisplayTime,
		})
	}
	return result
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		DoctorID: resp.DoctorID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    FromDomainSlots(resp.Slots),
	}
}
