package convert_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("convert_appointment: appointment not found")

	// ErrInvalidState возвращается при попытке конвертировать заявку,
	// не находящуюся в статусе completed
	ErrInvalidState = errors.New("convert_appointment: appointment is not eligible for conversion")

	// ErrConflict возвращается, когда параллельная операция изменила
	// заявку во время конвертации
	ErrConflict = errors.New("convert_appointment: appointment was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("convert_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("convert_appointment: internal error")
)
