package models

import (
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// Request модели

// RuleRequest правило расписания в запросе
// SlotDurationMinutes и IsActive опциональны (по умолчанию длительность из конфигурации и true)
type RuleRequest struct {
	ID                  *int64 `json:"id,omitempty"` // Если указан - правило обновляется
	DayOfWeek           int    `json:"dayOfWeek"`    // 1 = понедельник ... 7 = воскресенье
	StartTime           string `json:"startTime"`    // "09:00"
	EndTime             string `json:"endTime"`      // "12:00"
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty"`
	IsActive            *bool  `json:"isActive,omitempty"`
}

// WeeklyScheduleRequest полное недельное расписание врача
type WeeklyScheduleRequest struct {
	Rules []RuleRequest `json:"rules"`
}

// Response модели

// RuleResponse ответ с данными правила расписания
type RuleResponse struct {
	ID                  int64     `json:"id"`
	DoctorID            int64     `json:"doctorId"`
	DayOfWeek           int       `json:"dayOfWeek"`
	DayName             string    `json:"dayName"`   // "Monday"
	StartTime           string    `json:"startTime"` // "09:00"
	EndTime             string    `json:"endTime"`   // "12:00"
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ScheduleResponse ответ со списком правил
type ScheduleResponse struct {
	DoctorID int64          `json:"doctorId"`
	Rules    []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:                  r.ID,
		DoctorID:            r.DoctorID,
		DayOfWeek:           r.DayOfWeek,
		DayName:             r.DayName(),
		StartTime:           r.StartTime.String(),
		EndTime:             r.EndTime.String(),
		SlotDurationMinutes: r.SlotDurationMinutes,
		IsActive:            r.IsActive,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(doctorID int64, rules []*domain.AvailabilityRule) *ScheduleResponse {
	resp := &ScheduleResponse{
		DoctorID: doctorID,
		Rules:    make([]RuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}

	return resp
}
