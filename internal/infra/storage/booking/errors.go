package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("booking.repository: payment not found")

	// ErrStaleStatus возвращается, когда условное обновление статуса не
	// затронуло ни одной строки: бронирование изменено параллельным актором
	ErrStaleStatus = errors.New("booking.repository: stored status differs from expected")

	// ErrDuplicateReference возвращается при попытке создать бронирование
	// с уже существующим reference кодом
	ErrDuplicateReference = errors.New("booking.repository: duplicate reference")

	// ErrDuplicateTransaction возвращается при попытке записать платёж
	// с уже использованным transaction_id
	ErrDuplicateTransaction = errors.New("booking.repository: duplicate transaction id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
