package record_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("record_payment: booking not found")

	// ErrBookingNotPayable возвращается при попытке записать платёж
	// по отменённому или завершённому бронированию
	ErrBookingNotPayable = errors.New("record_payment: booking is not payable")

	// ErrInvalidAmount возвращается при неположительной сумме платежа
	ErrInvalidAmount = errors.New("record_payment: amount must be positive")

	// ErrOverpayment возвращается, когда платёж превысил бы итоговую
	// сумму бронирования; журнал при этом не изменяется
	ErrOverpayment = errors.New("record_payment: payment would exceed the final amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_payment: internal error")
)
