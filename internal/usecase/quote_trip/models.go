package quote_trip

import "time"

// Request модель запроса расчёта стоимости
type Request struct {
	TripRef   string    // Reference код турпакета
	StartDate time.Time // Начало запрошенного диапазона
	EndDate   time.Time // Конец запрошенного диапазона
	Travelers int       // Количество путешественников
}

// Response модель рассчитанной стоимости
// Расчёт чистый и повторяемый: никаких побочных эффектов,
// безопасно вызывать на каждое изменение дат в форме
type Response struct {
	TripRef     string
	TripName    string
	TripDays    int     // Количество дней в запрошенном диапазоне
	Repetitions int     // Сколько раз повторяется номинальная длительность пакета
	Travelers   int     // Количество путешественников после клампинга
	Subtotal    float64 // pricePerPerson * repetitions * travelers
	Discount    float64
	ServiceFee  float64 // Фиксированный сбор за бронирование
	Total       float64
	Currency    string

	// UsedNominalDuration true, если диапазон дат был некорректным
	// и расчёт выполнен по номинальной длительности пакета
	UsedNominalDuration bool
}
