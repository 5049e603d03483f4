package record_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager исполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo хранит бронирование и журнал платежей в памяти
type fakeRepo struct {
	booking  *domain.Booking
	payments []*domain.PaymentRecord
	nextID   int64
}

func (f *fakeRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.Reference != reference {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeRepo) AddPayment(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	for _, p := range f.payments {
		if p.BookingRef == payment.BookingRef && p.TransactionID == payment.TransactionID {
			return nil, bookingRepo.ErrDuplicateTransaction
		}
	}
	f.nextID++
	copied := *payment
	copied.ID = f.nextID
	copied.CreatedAt = time.Now()
	f.payments = append(f.payments, &copied)
	return &copied, nil
}

func (f *fakeRepo) GetPaymentByTransactionID(ctx context.Context, bookingRef, transactionID string) (*domain.PaymentRecord, error) {
	for _, p := range f.payments {
		if p.BookingRef == bookingRef && p.TransactionID == transactionID {
			return p, nil
		}
	}
	return nil, bookingRepo.ErrPaymentNotFound
}

func (f *fakeRepo) UpdatePaymentTotals(ctx context.Context, reference string, totalPaid float64, status domain.PaymentStatus) error {
	if f.booking == nil || f.booking.Reference != reference {
		return bookingRepo.ErrBookingNotFound
	}
	f.booking.TotalPaid = totalPaid
	f.booking.PaymentStatus = status
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, reference string, expected, next domain.BookingStatus) error {
	if f.booking == nil || f.booking.Reference != reference || f.booking.Status != expected {
		return bookingRepo.ErrStaleStatus
	}
	f.booking.Status = next
	return nil
}

func testBooking(status domain.BookingStatus, totalPaid float64) *domain.Booking {
	return &domain.Booking{
		Reference: "BKG-TEST0001",
		Travelers: 2,
		TripRef:   "TRIP-ALPS",
		Pricing: domain.PricingSnapshot{
			BaseAmount:  1800,
			ServiceFee:  99,
			FinalAmount: 1899,
			Currency:    "USD",
		},
		TotalPaid:     totalPaid,
		PaymentStatus: domain.DerivePaymentStatus(totalPaid, 1899),
		Status:        status,
	}
}

func newUseCase(repo *fakeRepo) *UseCase {
	return NewUseCase(repo, fakeTxManager{}, nopLogger{})
}

func paymentRequest(amount float64, txnID string) *Request {
	return &Request{
		BookingRef:    "BKG-TEST0001",
		Amount:        amount,
		Method:        "card",
		TransactionID: txnID,
		ActorID:       42,
	}
}

func TestExecute_PartialThenFull(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 0)}
	uc := newUseCase(repo)

	// Первый платёж закрывает часть суммы
	resp, err := uc.Execute(context.Background(), paymentRequest(1000, "txn-1"))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, resp.TotalPaid)
	assert.Equal(t, 899.0, resp.RemainingAmount)
	assert.Equal(t, string(domain.PaymentPartial), resp.PaymentStatus)
	assert.Equal(t, string(domain.BookingPendingPayment), resp.BookingStatus)
	assert.False(t, resp.Duplicate)

	// Второй платёж закрывает остаток и продвигает бронирование
	resp, err = uc.Execute(context.Background(), paymentRequest(899, "txn-2"))
	require.NoError(t, err)
	assert.Equal(t, 1899.0, resp.TotalPaid)
	assert.Equal(t, 0.0, resp.RemainingAmount)
	assert.Equal(t, string(domain.PaymentCompleted), resp.PaymentStatus)
	assert.Equal(t, string(domain.BookingPaymentReceived), resp.BookingStatus)
	assert.Equal(t, domain.BookingPaymentReceived, repo.booking.Status)
	assert.Len(t, repo.payments, 2)
}

func TestExecute_OverpaymentRejectedEntirely(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 0)}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), paymentRequest(1000, "txn-1"))
	require.NoError(t, err)

	// Остаток 899, платёж на 1000 отклоняется целиком
	_, err = uc.Execute(context.Background(), paymentRequest(1000, "txn-2"))
	assert.ErrorIs(t, err, ErrOverpayment)

	// Журнал и суммы не изменились
	assert.Len(t, repo.payments, 1)
	assert.Equal(t, 1000.0, repo.booking.TotalPaid)
	assert.Equal(t, domain.PaymentPartial, repo.booking.PaymentStatus)
}

func TestExecute_IdempotentReplay(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 0)}
	uc := newUseCase(repo)

	first, err := uc.Execute(context.Background(), paymentRequest(500, "txn-1"))
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	// Повтор с тем же transaction_id не задваивает сумму
	replay, err := uc.Execute(context.Background(), paymentRequest(500, "txn-1"))
	require.NoError(t, err)
	assert.True(t, replay.Duplicate)
	assert.Equal(t, first.PaymentID, replay.PaymentID)
	assert.Equal(t, 500.0, repo.booking.TotalPaid)
	assert.Len(t, repo.payments, 1)
}

func TestExecute_ExactRemainingPasses(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 1000)}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), paymentRequest(899, "txn-final"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.PaymentStatus)
	assert.True(t, repo.booking.IsFullyPaid())
}

func TestExecute_NoAutoAdvanceFromDraft(t *testing.T) {
	// Полная оплата драфта не продвигает статус: переход
	// draft -> payment_received нелегален
	repo := &fakeRepo{booking: testBooking(domain.BookingDraft, 0)}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), paymentRequest(1899, "txn-1"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.PaymentStatus)
	assert.Equal(t, domain.BookingDraft, repo.booking.Status)
}

func TestExecute_TerminalBookingRejected(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.BookingCancelled, domain.BookingCompleted} {
		repo := &fakeRepo{booking: testBooking(status, 0)}
		uc := newUseCase(repo)

		_, err := uc.Execute(context.Background(), paymentRequest(100, "txn-1"))
		assert.ErrorIs(t, err, ErrBookingNotPayable, "status %s", status)
		assert.Empty(t, repo.payments)
	}
}

func TestExecute_InvalidAmount(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 0)}
	uc := newUseCase(repo)

	for _, amount := range []float64{0, -50} {
		_, err := uc.Execute(context.Background(), paymentRequest(amount, "txn-1"))
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %.2f", amount)
	}
	assert.Empty(t, repo.payments)
}

func TestExecute_MissingTransactionID(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 0)}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), paymentRequest(100, ""))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(&fakeRepo{})

	_, err := uc.Execute(context.Background(), paymentRequest(100, "txn-1"))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_FractionalAmountsRoundCleanly(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 0)}
	repo.booking.Pricing.FinalAmount = 300.30
	repo.booking.PaymentStatus = domain.PaymentPending
	uc := newUseCase(repo)

	for i, amount := range []float64{100.10, 100.10, 100.10} {
		resp, err := uc.Execute(context.Background(), paymentRequest(amount, "txn-"+string(rune('a'+i))))
		require.NoError(t, err)
		if i == 2 {
			assert.Equal(t, 300.30, resp.TotalPaid)
			assert.Equal(t, string(domain.PaymentCompleted), resp.PaymentStatus)
		}
	}
}
