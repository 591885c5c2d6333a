package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateSlot возвращается при нарушении уникальности (doctor_id, appointment_date)
	// среди неотменённых записей
	ErrDuplicateSlot = errors.New("appointment.repository: doctor already has an appointment at this time")

	// ErrLockDoctor возвращается, если не удалось взять advisory lock врача
	ErrLockDoctor = errors.New("appointment.repository: failed to lock doctor")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
