package tripcatalog

import "errors"

var (
	// ErrTripNotFound возвращается, когда турпакет не найден в каталоге
	ErrTripNotFound = errors.New("trip package not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tripcatalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tripcatalog client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что TripCatalogService недоступен
	ErrServiceDegraded = errors.New("tripcatalog unavailable: graceful degradation applied")
)
