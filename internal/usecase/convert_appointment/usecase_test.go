package convert_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
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

type fakeAppointmentRepo struct {
	apt *domain.Appointment
}

func (f *fakeAppointmentRepo) GetByReference(ctx context.Context, reference string) (*domain.Appointment, error) {
	if f.apt == nil || f.apt.Reference != reference {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *f.apt
	return &copied, nil
}

func (f *fakeAppointmentRepo) MarkConverted(ctx context.Context, reference string, bookingRef string) error {
	if f.apt == nil || f.apt.Reference != reference ||
		f.apt.Status != domain.AppointmentCompleted || f.apt.ConvertedBookingRef != nil {
		return appointmentRepo.ErrStaleStatus
	}
	f.apt.Status = domain.AppointmentConverted
	f.apt.ConvertedBookingRef = &bookingRef
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.bookings == nil {
		f.bookings = make(map[string]*domain.Booking)
	}
	if _, ok := f.bookings[booking.Reference]; ok {
		return nil, bookingRepo.ErrDuplicateReference
	}
	booking.CreatedAt = time.Now()
	f.bookings[booking.Reference] = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	b, ok := f.bookings[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	estimated := 2000.0
	return &domain.Appointment{
		Reference:      "APT-TEST0001",
		CustomerName:   "Jane Traveler",
		CustomerEmail:  "jane@example.com",
		CustomerPhone:  "+15550001122",
		Travelers:      2,
		TripRef:        "TRIP-ALPS",
		PreferredDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EstimatedPrice: &estimated,
		Status:         status,
		SourceChannel:  "web",
	}
}

func conversionRequest() *Request {
	return &Request{
		AppointmentRef: "APT-TEST0001",
		FinalPrice:     1750,
		StartDate:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
		ActorID:        42,
	}
}

func newUseCase(apts *fakeAppointmentRepo, bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(apts, bookings, fakeTxManager{}, domain.DefaultCurrency, nopLogger{})
}

func TestExecute_ConvertsCompletedAppointment(t *testing.T) {
	apts := &fakeAppointmentRepo{apt: testAppointment(domain.AppointmentCompleted)}
	bookings := &fakeBookingRepo{}
	uc := newUseCase(apts, bookings)

	resp, err := uc.Execute(context.Background(), conversionRequest())
	require.NoError(t, err)

	assert.False(t, resp.AlreadyConverted)
	assert.Equal(t, "APT-TEST0001", resp.AppointmentRef)
	assert.Equal(t, string(domain.BookingDraft), resp.BookingStatus)
	assert.Equal(t, 1750.0, resp.FinalAmount)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	assert.Equal(t, 2, resp.Travelers)

	// Заявка помечена конвертированной и ссылается на бронирование
	assert.Equal(t, domain.AppointmentConverted, apts.apt.Status)
	require.NotNil(t, apts.apt.ConvertedBookingRef)
	assert.Equal(t, resp.BookingRef, *apts.apt.ConvertedBookingRef)

	// Бронирование унаследовало данные клиента и ссылку на заявку
	created := bookings.bookings[resp.BookingRef]
	require.NotNil(t, created)
	assert.Equal(t, "Jane Traveler", created.CustomerName)
	assert.Equal(t, "TRIP-ALPS", created.TripRef)
	require.NotNil(t, created.AppointmentRef)
	assert.Equal(t, "APT-TEST0001", *created.AppointmentRef)
	assert.Equal(t, 1750.0, created.Pricing.FinalAmount)
	assert.Equal(t, 0.0, created.TotalPaid)
	assert.Equal(t, domain.PaymentPending, created.PaymentStatus)
}

func TestExecute_ScheduledAppointmentRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentScheduled, domain.AppointmentConfirmed, domain.AppointmentCancelled,
	} {
		apts := &fakeAppointmentRepo{apt: testAppointment(status)}
		bookings := &fakeBookingRepo{}
		uc := newUseCase(apts, bookings)

		_, err := uc.Execute(context.Background(), conversionRequest())
		assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		assert.Empty(t, bookings.bookings)
		assert.Equal(t, status, apts.apt.Status)
	}
}

func TestExecute_IdempotentReplay(t *testing.T) {
	apts := &fakeAppointmentRepo{apt: testAppointment(domain.AppointmentCompleted)}
	bookings := &fakeBookingRepo{}
	uc := newUseCase(apts, bookings)

	first, err := uc.Execute(context.Background(), conversionRequest())
	require.NoError(t, err)

	// Повторная конвертация возвращает то же бронирование
	replay, err := uc.Execute(context.Background(), conversionRequest())
	require.NoError(t, err)
	assert.True(t, replay.AlreadyConverted)
	assert.Equal(t, first.BookingRef, replay.BookingRef)
	assert.Len(t, bookings.bookings, 1)
}

func TestExecute_TravelersOverride(t *testing.T) {
	apts := &fakeAppointmentRepo{apt: testAppointment(domain.AppointmentCompleted)}
	bookings := &fakeBookingRepo{}
	uc := newUseCase(apts, bookings)

	req := conversionRequest()
	travelers := 4
	req.Travelers = &travelers

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Travelers)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), conversionRequest())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	apts := &fakeAppointmentRepo{apt: testAppointment(domain.AppointmentCompleted)}
	uc := newUseCase(apts, &fakeBookingRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty reference", func(r *Request) { r.AppointmentRef = "" }},
		{"zero price", func(r *Request) { r.FinalPrice = 0 }},
		{"negative price", func(r *Request) { r.FinalPrice = -100 }},
		{"end before start", func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }},
		{"zero travelers", func(r *Request) { z := 0; r.Travelers = &z }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := conversionRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
