package reschedule_booking

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_booking: appointment not found")

	// ErrInvalidStateTransition возвращается при переносе отменённой записи
	ErrInvalidStateTransition = errors.New("reschedule_booking: cancelled appointment cannot be rescheduled")

	// ErrSlotNotAvailable возвращается, когда новый момент не проходит проверку доступности
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
