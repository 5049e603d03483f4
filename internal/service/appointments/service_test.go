package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRepo хранит одну заявку в памяти и имитирует условное обновление
type fakeRepo struct {
	apt       *domain.Appointment
	staleOnce bool // следующий UpdateStatus вернёт ErrStaleStatus
}

func (f *fakeRepo) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	f.apt = apt
	return apt, nil
}

func (f *fakeRepo) GetByReference(ctx context.Context, reference string) (*domain.Appointment, error) {
	if f.apt == nil || f.apt.Reference != reference {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *f.apt
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.apt == nil {
		return []*domain.Appointment{}, nil
	}
	if filter.Status != nil && f.apt.Status != *filter.Status {
		return []*domain.Appointment{}, nil
	}
	return []*domain.Appointment{f.apt}, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, reference string, expected, next domain.AppointmentStatus) error {
	if f.staleOnce {
		f.staleOnce = false
		return appointmentRepo.ErrStaleStatus
	}
	if f.apt == nil || f.apt.Reference != reference || f.apt.Status != expected {
		return appointmentRepo.ErrStaleStatus
	}
	f.apt.Status = next
	return nil
}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		Reference:     "APT-TEST0001",
		CustomerName:  "Jane Traveler",
		CustomerEmail: "jane@example.com",
		Travelers:     2,
		TripRef:       "TRIP-ALPS",
		PreferredDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:        status,
		SourceChannel: "web",
	}
}

func TestCreate_StartsScheduled(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateAppointmentRequest{
		CustomerName:  "Jane Traveler",
		CustomerEmail: "jane@example.com",
		TripRef:       "TRIP-ALPS",
		PreferredDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.AppointmentScheduled), resp.Status)
	assert.Len(t, resp.Reference, 12)
	assert.Equal(t, "APT", resp.Reference[:3])
	// Пустое количество путешественников поднимается до минимума
	assert.Equal(t, domain.MinTravelers, resp.Travelers)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateAppointmentRequest{
		CustomerName: "Jane Traveler",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransition_LegalChain(t *testing.T) {
	repo := &fakeRepo{apt: testAppointment(domain.AppointmentScheduled)}
	svc := NewService(repo, nopLogger{})

	for _, next := range []string{"confirmed", "completed"} {
		resp, err := svc.Transition(context.Background(), "APT-TEST0001", &models.TransitionRequest{Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, resp.Status)
	}
}

func TestTransition_DirectConvertedRejected(t *testing.T) {
	repo := &fakeRepo{apt: testAppointment(domain.AppointmentCompleted)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "APT-TEST0001", &models.TransitionRequest{Status: "converted"})
	assert.ErrorIs(t, err, ErrConversionRequired)
	assert.Equal(t, domain.AppointmentCompleted, repo.apt.Status)
}

func TestTransition_Illegal(t *testing.T) {
	repo := &fakeRepo{apt: testAppointment(domain.AppointmentCancelled)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "APT-TEST0001", &models.TransitionRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	repo := &fakeRepo{apt: testAppointment(domain.AppointmentConfirmed)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Transition(context.Background(), "APT-TEST0001", &models.TransitionRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestTransition_ConcurrentModification(t *testing.T) {
	repo := &fakeRepo{apt: testAppointment(domain.AppointmentScheduled), staleOnce: true}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "APT-TEST0001", &models.TransitionRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestTransition_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.Transition(context.Background(), "APT-MISSING", &models.TransitionRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestTransition_UnknownStatus(t *testing.T) {
	repo := &fakeRepo{apt: testAppointment(domain.AppointmentScheduled)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Transition(context.Background(), "APT-TEST0001", &models.TransitionRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
