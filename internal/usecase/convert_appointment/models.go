package convert_appointment

import "time"

// Request модель запроса конвертации заявки в бронирование
type Request struct {
	AppointmentRef string

	// FinalPrice согласованная на консультации цена; замораживается
	// в снимке цены бронирования и больше не пересчитывается
	FinalPrice float64
	Currency   *string // По умолчанию валюта сервиса

	StartDate time.Time
	EndDate   time.Time

	// Travelers переопределяет число путешественников из заявки (опционально)
	Travelers *int

	ActorID int64
}

// Response модель результата конвертации
type Response struct {
	AppointmentRef string
	BookingRef     string
	BookingStatus  string
	FinalAmount    float64
	Currency       string
	Travelers      int
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time

	// AlreadyConverted true, если заявка уже была конвертирована ранее
	// и запрос обработан идемпотентно
	AlreadyConverted bool
}
