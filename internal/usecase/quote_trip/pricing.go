package quote_trip

import (
	"math"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/tripcatalog"
)

// quote вычисляет стоимость турпакета для запрошенного диапазона дат
// и количества путешественников
// Чистая функция без побочных эффектов
//
// Алгоритм:
//   - tripDays = ceil(диапазон / 24h), минимум 1
//   - repetitions = ceil(tripDays / nominalDays), минимум 1
//   - subtotal = round2(pricePerPerson * repetitions * travelers)
//   - total = max(serviceFee, subtotal + serviceFee - discount)
//
// Некорректный диапазон (нулевые даты, end <= start) не является ошибкой:
// расчёт выполняется по номинальной длительности пакета с одним повторением,
// чтобы редактирование дат в форме никогда не блокировало оформление
func quote(trip *tripcatalog.TripPackage, start, end time.Time, travelers int, serviceFee float64) *Response {
	nominalDays := trip.NominalDays
	if nominalDays < 1 {
		nominalDays = 1
	}

	tripDays, rangeValid := tripDaysBetween(start, end)
	if !rangeValid {
		tripDays = nominalDays
	}

	repetitions := (tripDays + nominalDays - 1) / nominalDays
	if repetitions < 1 {
		repetitions = 1
	}

	clamped := clampTravelers(travelers, trip.MaxGroupSize)

	subtotal := round2(trip.PricePerPerson * float64(repetitions) * float64(clamped))

	discount := trip.DiscountAmount
	if discount < 0 {
		discount = 0
	}

	// Нижняя граница: скидка не может увести итог ниже сервисного сбора
	total := round2(subtotal + serviceFee - discount)
	if total < serviceFee {
		total = serviceFee
	}

	currency := trip.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return &Response{
		TripRef:             trip.Reference,
		TripName:            trip.Name,
		TripDays:            tripDays,
		Repetitions:         repetitions,
		Travelers:           clamped,
		Subtotal:            subtotal,
		Discount:            discount,
		ServiceFee:          serviceFee,
		Total:               total,
		Currency:            currency,
		UsedNominalDuration: !rangeValid,
	}
}

// tripDaysBetween возвращает длительность диапазона в днях (ceil)
// и признак корректности диапазона
func tripDaysBetween(start, end time.Time) (int, bool) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0, false
	}

	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, true
}

// clampTravelers приводит количество путешественников к допустимому
// диапазону [1, maxGroupSize]; maxGroupSize = 0 означает без ограничения
func clampTravelers(travelers, maxGroupSize int) int {
	if travelers < domain.MinTravelers {
		return domain.MinTravelers
	}
	if maxGroupSize > 0 && travelers > maxGroupSize {
		return maxGroupSize
	}
	return travelers
}

// round2 округляет денежную сумму до двух знаков
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
