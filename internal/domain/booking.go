package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingDraft           BookingStatus = "draft"
	BookingPendingPayment  BookingStatus = "pending_payment"
	BookingPaymentReceived BookingStatus = "payment_received"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingCompleted       BookingStatus = "completed"
	BookingCancelled       BookingStatus = "cancelled"
)

// PricingSnapshot is the pricing frozen at booking time.
// It is the source of truth for the amount due; quotes are never
// recomputed against a live booking.
type PricingSnapshot struct {
	BaseAmount     float64
	DiscountAmount float64
	ServiceFee     float64
	FinalAmount    float64
	Currency       string
}

// Booking represents a confirmed-intent trip reservation
type Booking struct {
	Reference string // "BKG-XXXXXXXX", unique

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Travelers     int

	TripRef   string
	StartDate time.Time
	EndDate   time.Time

	Pricing PricingSnapshot

	// TotalPaid is monotonically non-decreasing and never exceeds
	// Pricing.FinalAmount. Derived from the append-only payment ledger.
	TotalPaid     float64
	PaymentStatus PaymentStatus

	Status        BookingStatus
	SourceChannel string

	// Back-reference to the originating appointment (if converted)
	AppointmentRef *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingAmount returns the amount still due against the frozen price
func (b *Booking) RemainingAmount() float64 {
	return b.Pricing.FinalAmount - b.TotalPaid
}

// IsFullyPaid returns true if nothing remains to be paid
func (b *Booking) IsFullyPaid() bool {
	return b.RemainingAmount() <= 0
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCompleted || b.Status == BookingCancelled
}

// IsActive returns true if the booking is in a non-cancelled state
func (b *Booking) IsActive() bool {
	return b.Status != BookingCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	Status           *BookingStatus // Фильтр по статусу (опционально)
	TripRef          *string        // Фильтр по туру (опционально)
	StartDate        *time.Time     // Начало периода поездок (опционально)
	EndDate          *time.Time     // Конец периода поездок (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
