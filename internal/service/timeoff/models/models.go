package models

import (
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// Request модели

// AddTimeOffRequest запрос на добавление периода отсутствия
type AddTimeOffRequest struct {
	StartDate string  `json:"startDate"` // "2025-10-15"
	EndDate   string  `json:"endDate"`   // "2025-10-20", включительно
	Reason    *string `json:"reason,omitempty"`
}

// Response модели

// TimeOffResponse ответ с данными периода отсутствия
type TimeOffResponse struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctorId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeOffListResponse ответ со списком периодов
type TimeOffListResponse struct {
	DoctorID int64             `json:"doctorId"`
	Periods  []TimeOffResponse `json:"periods"`
}

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(p *domain.TimeOffPeriod) *TimeOffResponse {
	if p == nil {
		return nil
	}

	return &TimeOffResponse{
		ID:        p.ID,
		DoctorID:  p.DoctorID,
		StartDate: p.StartDate.Format(domain.DateFormat),
		EndDate:   p.EndDate.Format(domain.DateFormat),
		Reason:    p.Reason,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainTimeOffList конвертирует список domain моделей в DTO
func FromDomainTimeOffList(doctorID int64, periods []*domain.TimeOffPeriod) *TimeOffListResponse {
	resp := &TimeOffListResponse{
		DoctorID: doctorID,
		Periods:  make([]TimeOffResponse, 0, len(periods)),
	}

	for _, period := range periods {
		if periodResp := FromDomainTimeOff(period); periodResp != nil {
			resp.Periods = append(resp.Periods, *periodResp)
		}
	}

	return resp
}
