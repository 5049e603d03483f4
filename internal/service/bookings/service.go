package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByReference получает бронирование вместе с журналом платежей
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	payments, err := s.bookingRepo.ListPayments(ctx, reference)
	if err != nil {
		s.logger.Error("GetByReference: failed to fetch payments for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - failed to fetch payments: %v", ErrInternal, err)
	}

	return models.FromDomainBookingWithPayments(booking, payments), nil
}

// List получает список бронирований с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v, includeCancelled=%v", req.Status, req.IncludeCancelled)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Transition переводит бронирование в запрошенный статус
// Правила:
// - переход в текущий статус - no-op успех (идемпотентность)
// - переход должен быть разрешён таблицей переходов
// - статусы payment_received/confirmed/completed недостижимы при
//   remaining > 0 без явного manual override (override логируется)
// - обновление условное: stale-state write возвращает ErrStatusConflict
func (s *Service) Transition(ctx context.Context, reference string, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking ref=%s to status=%s by actor=%d", reference, req.Status, req.ActorID)

	requested, err := domain.ParseBookingStatus(strings.TrimSpace(req.Status))
	if err != nil {
		s.logger.Warn("Transition: invalid status=%q for ref=%s", req.Status, reference)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Transition: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Transition: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	// Идемпотентность: запрошен текущий статус
	if booking.Status == requested {
		s.logger.Info("Transition: ref=%s already in status=%s, no-op", reference, requested)
		return models.FromDomainBooking(booking), nil
	}

	if !booking.Status.CanTransitionTo(requested) {
		s.logger.Warn("Transition: illegal transition %s -> %s for ref=%s", booking.Status, requested, reference)
		return nil, fmt.Errorf("%w: ref=%s, current=%s, requested=%s",
			ErrIllegalTransition, reference, booking.Status, requested)
	}

	// Финансовый инвариант: статусы, требующие полной оплаты, недостижимы
	// при ненулевом остатке без явного manual override
	if requested.RequiresFullPayment() && !booking.IsFullyPaid() {
		if !req.ManualOverride {
			s.logger.Warn("Transition: payment incomplete for ref=%s, remaining=%.2f, requested=%s",
				reference, booking.RemainingAmount(), requested)
			return nil, fmt.Errorf("%w: ref=%s, remaining=%.2f %s",
				ErrPaymentIncomplete, reference, booking.RemainingAmount(), booking.Pricing.Currency)
		}
		s.logger.Warn("Transition: MANUAL OVERRIDE ref=%s %s -> %s by actor=%d, remaining=%.2f %s, reason=%q",
			reference, booking.Status, requested, req.ActorID,
			booking.RemainingAmount(), booking.Pricing.Currency, req.OverrideReason)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, reference, booking.Status, requested); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Transition: concurrent modification of ref=%s, expected status=%s", reference, booking.Status)
			return nil, fmt.Errorf("%w: ref=%s, expected=%s", ErrStatusConflict, reference, booking.Status)
		}
		s.logger.Error("Transition: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	booking.Status = requested

	s.logger.Info("Transition: successfully moved ref=%s to status=%s", reference, requested)
	return models.FromDomainBooking(booking), nil
}
