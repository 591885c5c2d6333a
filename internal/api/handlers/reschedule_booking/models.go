package reschedule_booking

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewDateTime string `json:"newDateTime"` // "2025-10-15T10:30:00"
}
