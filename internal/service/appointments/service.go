package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

// Service сервис для работы с заявками на консультацию
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Create создает новую заявку в статусе scheduled
func (s *Service) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Create: creating appointment for trip=%s, customer=%s", req.TripRef, req.CustomerEmail)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	travelers := req.Travelers
	if travelers < domain.MinTravelers {
		travelers = domain.MinTravelers
	}

	apt := &domain.Appointment{
		Reference:      domain.NewAppointmentRef(),
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Travelers:      travelers,
		TripRef:        req.TripRef,
		PreferredDate:  req.PreferredDate,
		PreferredTime:  req.PreferredTime,
		EstimatedPrice: req.EstimatedPrice,
		Status:         domain.AppointmentScheduled,
		SourceChannel:  req.SourceChannel,
	}

	created, err := s.appointmentRepo.Create(ctx, apt)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created appointment ref=%s", created.Reference)
	return models.FromDomainAppointment(created), nil
}

// GetByReference получает заявку по reference коду
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByReference: fetching appointment ref=%s", reference)

	apt, err := s.appointmentRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByReference: appointment ref=%s not found", reference)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(apt), nil
}

// List получает список заявок с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, status=%v", req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Transition переводит заявку в запрошенный статус через таблицу переходов
// Переход в текущий статус - no-op успех (идемпотентность)
// Переход в converted напрямую запрещён - только через workflow конверсии
// Обновление условное: если заявку успел изменить параллельный актор,
// возвращается ErrStatusConflict
func (s *Service) Transition(ctx context.Context, reference string, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: appointment ref=%s to status=%s", reference, req.Status)

	requested, err := domain.ParseAppointmentStatus(strings.TrimSpace(req.Status))
	if err != nil {
		s.logger.Warn("Transition: invalid status=%q for ref=%s", req.Status, reference)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if requested == domain.AppointmentConverted {
		s.logger.Warn("Transition: direct transition to converted rejected for ref=%s", reference)
		return nil, ErrConversionRequired
	}

	apt, err := s.appointmentRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Transition: appointment ref=%s not found", reference)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Transition: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	// Идемпотентность: запрошен текущий статус
	if apt.Status == requested {
		s.logger.Info("Transition: ref=%s already in status=%s, no-op", reference, requested)
		return models.FromDomainAppointment(apt), nil
	}

	if !apt.Status.CanTransitionTo(requested) {
		s.logger.Warn("Transition: illegal transition %s -> %s for ref=%s", apt.Status, requested, reference)
		return nil, fmt.Errorf("%w: ref=%s, current=%s, requested=%s",
			ErrIllegalTransition, reference, apt.Status, requested)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, reference, apt.Status, requested); err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			s.logger.Warn("Transition: concurrent modification of ref=%s, expected status=%s", reference, apt.Status)
			return nil, fmt.Errorf("%w: ref=%s, expected=%s", ErrStatusConflict, reference, apt.Status)
		}
		s.logger.Error("Transition: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	apt.Status = requested

	s.logger.Info("Transition: successfully moved ref=%s to status=%s", reference, requested)
	return models.FromDomainAppointment(apt), nil
}

// validateCreateRequest валидирует входные данные создания заявки
func validateCreateRequest(req *models.CreateAppointmentRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.TripRef) == "" {
		return fmt.Errorf("%w: trip reference is required", ErrInvalidInput)
	}
	if req.PreferredDate.IsZero() {
		return fmt.Errorf("%w: preferred date is required", ErrInvalidInput)
	}
	if len(req.SourceChannel) > domain.MaxSourceChannelLen {
		return fmt.Errorf("%w: source channel is too long", ErrInvalidInput)
	}
	return nil
}
