package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStaleStatus возвращается, когда условное обновление статуса не
	// затронуло ни одной строки: заявка изменена параллельным актором
	// или удалена
	ErrStaleStatus = errors.New("appointment.repository: stored status differs from expected")

	// ErrDuplicateReference возвращается при попытке создать заявку
	// с уже существующим reference кодом
	ErrDuplicateReference = errors.New("appointment.repository: duplicate reference")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
