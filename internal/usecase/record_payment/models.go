package record_payment

import "time"

// Request модель запроса записи платежа
type Request struct {
	BookingRef    string
	Amount        float64
	Method        string  // card, cash, transfer, ...
	TransactionID string  // Ключ идемпотентности: повторная запись не задваивает сумму
	Note          *string // Свободный комментарий (опционально)
	ActorID       int64   // Кто записал платёж
}

// Response модель результата записи платежа
type Response struct {
	BookingRef      string
	PaymentID       int64
	Amount          float64
	Method          string
	TransactionID   string
	Note            *string
	RecordedAt      time.Time
	TotalPaid       float64
	RemainingAmount float64
	PaymentStatus   string
	BookingStatus   string

	// Duplicate true, если платёж с этим transaction_id уже был записан
	// и запрос обработан идемпотентно (без изменения журнала)
	Duplicate bool
}
