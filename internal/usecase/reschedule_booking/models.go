package reschedule_booking

import "time"

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64     // ID записи
	NewDateTime   time.Time // Новый момент начала приёма (время клиники)
}
