package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRepo хранит одно бронирование в памяти и имитирует условное обновление
type fakeRepo struct {
	booking    *domain.Booking
	payments   []*domain.PaymentRecord
	staleOnce  bool // следующий UpdateStatus вернёт ErrStaleStatus
	lastUpdate [2]domain.BookingStatus
}

func (f *fakeRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.Reference != reference {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return []*domain.Booking{}, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, reference string, expected, next domain.BookingStatus) error {
	if f.staleOnce {
		f.staleOnce = false
		return bookingRepo.ErrStaleStatus
	}
	if f.booking == nil || f.booking.Reference != reference || f.booking.Status != expected {
		return bookingRepo.ErrStaleStatus
	}
	f.booking.Status = next
	f.lastUpdate = [2]domain.BookingStatus{expected, next}
	return nil
}

func (f *fakeRepo) ListPayments(ctx context.Context, bookingRef string) ([]*domain.PaymentRecord, error) {
	return f.payments, nil
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

func TestTransition_LegalChain(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingDraft, 0)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "pending_payment"})
	require.NoError(t, err)
	assert.Equal(t, "pending_payment", resp.Status)
	assert.Equal(t, domain.BookingPendingPayment, repo.booking.Status)
}

func TestTransition_Illegal(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingDraft, 0)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
	// Состояние не изменилось
	assert.Equal(t, domain.BookingDraft, repo.booking.Status)
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingConfirmed, 1899)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestTransition_PaymentGate(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 400)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "payment_received"})
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Equal(t, domain.BookingPendingPayment, repo.booking.Status)
}

func TestTransition_PaymentGate_ManualOverride(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 400)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{
		Status:         "payment_received",
		ManualOverride: true,
		OverrideReason: "paid in cash at the office",
		ActorID:        42,
	})
	require.NoError(t, err)
	assert.Equal(t, "payment_received", resp.Status)
}

func TestTransition_FullyPaidPassesGate(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingPendingPayment, 1899)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "payment_received"})
	require.NoError(t, err)
	assert.Equal(t, "payment_received", resp.Status)
}

func TestTransition_CancelFromAnyNonTerminal(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.BookingDraft, domain.BookingPendingPayment, domain.BookingPaymentReceived, domain.BookingConfirmed,
	} {
		repo := &fakeRepo{booking: testBooking(status, 0)}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "cancelled"})
		require.NoError(t, err, "cancel from %s", status)
	}
}

func TestTransition_ConcurrentModification(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingDraft, 0), staleOnce: true}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "pending_payment"})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestTransition_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "BKG-MISSING", &models.TransitionRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_UnknownStatus(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.BookingDraft, 0)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "BKG-TEST0001", &models.TransitionRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
