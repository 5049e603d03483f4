package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrIllegalTransition возвращается, когда запрошенный статус
	// недостижим из текущего
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrPaymentIncomplete возвращается при попытке перевести бронирование
	// в статус, требующий полной оплаты, пока остаток больше нуля
	// и не передан явный manual override
	ErrPaymentIncomplete = errors.New("booking has outstanding balance")

	// ErrStatusConflict возвращается, когда бронирование успел изменить
	// параллельный актор (stale-state write)
	ErrStatusConflict = errors.New("booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
