package check_slot_availability

import "time"

// Причины, по которым момент недоступен для записи
const (
	ReasonInPast          = "in_past"
	ReasonTimeOff         = "time_off"
	ReasonOutsideSchedule = "outside_schedule"
	ReasonConflict        = "conflict"
)

// Request модель запроса на проверку момента времени
type Request struct {
	DoctorID             int64     // ID врача
	DateTime             time.Time // Проверяемый момент (время клиники)
	ExcludeAppointmentID *int64    // Запись, которая не считается конфликтом (при переносе)
}

// Response результат проверки
type Response struct {
	DoctorID        int64
	DateTime        time.Time
	Available       bool
	Reason          string // Пусто, если момент свободен
	DurationMinutes int    // Длительность слота по найденному правилу (0, если правила нет)
}
