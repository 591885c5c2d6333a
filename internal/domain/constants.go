package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultMaxRangeDays        = 31
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinDayOfWeek           = 1   // Monday
	MaxDayOfWeek           = 7   // Sunday
	MaxReasonLength        = 500
	MaxNotesLength         = 1000
)

// Time format constants
const (
	TimeFormat          = "15:04"               // HH:MM
	DateFormat          = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat      = "2006-01-02T15:04:05" // локальное время клиники, без смещения
	DateTimeShortFormat = "2006-01-02T15:04"
	DisplayTimeFormat   = "03:04 PM"         // "09:00 AM"
	AuditDateTimeFormat = "02/01/2006 15:04" // dd/MM/yyyy HH:mm
)

// ActiveStatuses статусы записей, которые занимают время врача
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}
