package quote_trip

import "errors"

var (
	// ErrTripNotFound возвращается, когда турпакет не найден в каталоге
	ErrTripNotFound = errors.New("quote_trip: trip package not found")

	// ErrTripNotBookable возвращается, когда турпакет неактивен
	// или не имеет корректной цены
	ErrTripNotBookable = errors.New("quote_trip: trip package is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_trip: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_trip: internal error")
)
