package get_available_slots

import (
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// Request модель запроса на получение слотов на дату
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата (время игнорируется)
}

// Response слоты на дату в порядке времени начала, включая занятые
type Response struct {
	DoctorID int64
	Date     time.Time
	Slots    []domain.TimeSlot
}

// RangeRequest модель запроса на получение слотов за период
type RangeRequest struct {
	DoctorID  int64     // ID врача
	StartDate time.Time // Первая дата, включительно
	EndDate   time.Time // Последняя дата, включительно
}

// RangeResponse дни периода, в которых есть хотя бы один свободный слот, по возрастанию даты
type RangeResponse struct {
	DoctorID  int64
	StartDate time.Time
	EndDate   time.Time
	Days      []domain.DaySlots
}
