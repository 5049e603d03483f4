package record_payment

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	AddPayment(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error)
	GetPaymentByTransactionID(ctx context.Context, bookingRef, transactionID string) (*domain.PaymentRecord, error)
	UpdatePaymentTotals(ctx context.Context, reference string, totalPaid float64, status domain.PaymentStatus) error
	UpdateStatus(ctx context.Context, reference string, expected, next domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
