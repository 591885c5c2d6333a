package create_booking

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в IdentityService
	ErrDoctorNotFound = errors.New("create_booking: doctor not found")

	// ErrPatientNotFound возвращается, когда пациент не найден в IdentityService
	ErrPatientNotFound = errors.New("create_booking: patient not found")

	// ErrSlotNotAvailable возвращается, когда момент не проходит проверку доступности
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
