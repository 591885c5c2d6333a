package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда правило расписания не найдено
	ErrAvailabilityNotFound = errors.New("availability: rule not found")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("availability: doctor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
