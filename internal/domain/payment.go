package domain

import "time"

// PaymentStatus represents how much of the booking's final amount is covered
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

// PaymentRecord is a single entry in a booking's payment ledger.
// The ledger is append-only: corrections are new compensating entries,
// never edits or deletes of recorded ones.
type PaymentRecord struct {
	ID         int64
	BookingRef string

	Amount        float64
	Method        string
	TransactionID string // idempotency key: the same id is never counted twice
	Note          *string

	CreatedAt time.Time
}

// DerivePaymentStatus classifies the payment state of a booking from
// the total paid so far and the frozen final amount
func DerivePaymentStatus(totalPaid, finalAmount float64) PaymentStatus {
	switch {
	case totalPaid <= 0:
		return PaymentPending
	case totalPaid < finalAmount:
		return PaymentPartial
	default:
		return PaymentCompleted
	}
}
