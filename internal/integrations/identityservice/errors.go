package identityservice

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач с указанным ID не существует
	ErrDoctorNotFound = errors.New("identityservice client: doctor not found")

	// ErrPatientNotFound возвращается, когда пациент с указанным ID не существует
	ErrPatientNotFound = errors.New("identityservice client: patient not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда circuit breaker разомкнут
	ErrServiceUnavailable = errors.New("identityservice client: service unavailable")
)
