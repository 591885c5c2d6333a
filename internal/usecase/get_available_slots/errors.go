package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrRangeTooLarge возвращается, когда диапазон дат превышает max_range_days
	ErrRangeTooLarge = errors.New("get_available_slots: date range is too large")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
