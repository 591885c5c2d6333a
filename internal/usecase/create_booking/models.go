package create_booking

import "time"

// Request модель запроса на запись к врачу
type Request struct {
	PatientID int64     // ID пациента
	DoctorID  int64     // ID врача
	DateTime  time.Time // Момент начала приёма (время клиники)
	Reason    *string   // Причина обращения (опционально)
}
