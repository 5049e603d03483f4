package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrIllegalTransition возвращается, когда запрошенный статус
	// недостижим из текущего
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrConversionRequired возвращается при попытке перевести заявку
	// в статус converted напрямую - статус устанавливается только
	// через workflow конверсии
	ErrConversionRequired = errors.New("converted status is set only by the conversion workflow")

	// ErrStatusConflict возвращается, когда заявку успел изменить
	// параллельный актор (stale-state write)
	ErrStatusConflict = errors.New("appointment was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments service: internal error")
)
