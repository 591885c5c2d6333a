package timeoff

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда период отсутствия не найден
	ErrTimeOffNotFound = errors.New("timeoff: period not found")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("timeoff: doctor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("timeoff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeoff: internal error")
)
