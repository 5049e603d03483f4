package convert_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case конвертации завершённой консультации в бронирование
type UseCase struct {
	appointmentRepo AppointmentRepository
	bookingRepo     BookingRepository
	txManager       TransactionManager
	defaultCurrency string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	defaultCurrency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		bookingRepo:     bookingRepo,
		txManager:       txManager,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Execute конвертирует заявку в бронирование
// Создание бронирования и пометка заявки выполняются в одной сериализуемой
// транзакции: либо происходит и то и другое, либо ничего
//
// Правила:
//   - конвертируется только заявка в статусе completed
//   - заявка конвертируется не больше одного раза; повторный запрос
//     идемпотентно возвращает уже созданное бронирование
//   - бронирование создаётся в статусе draft с замороженной ценой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConvertAppointment: appointment=%s, final_price=%.2f, actor=%d",
		req.AppointmentRef, req.FinalPrice, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConvertAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем заявку с блокировкой строки
		apt, err := uc.appointmentRepo.GetByReference(txCtx, req.AppointmentRef)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ConvertAppointment: appointment=%s not found", req.AppointmentRef)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ConvertAppointment: failed to get appointment=%s: %v", req.AppointmentRef, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// Идемпотентность: заявка уже конвертирована - возвращаем
		// существующее бронирование без изменений
		if apt.IsConverted() && apt.ConvertedBookingRef != nil {
			existing, err := uc.bookingRepo.GetByReference(txCtx, *apt.ConvertedBookingRef)
			if err != nil {
				uc.logger.Error("ConvertAppointment: failed to load booking=%s for converted appointment=%s: %v",
					*apt.ConvertedBookingRef, req.AppointmentRef, err)
				return fmt.Errorf("%w: failed to load existing booking: %v", ErrInternal, err)
			}
			uc.logger.Info("ConvertAppointment: appointment=%s already converted to booking=%s, idempotent replay",
				req.AppointmentRef, existing.Reference)
			result = buildResponse(req.AppointmentRef, existing, true)
			return nil
		}

		if !apt.CanBeConverted() {
			uc.logger.Warn("ConvertAppointment: appointment=%s in status=%s is not convertible",
				req.AppointmentRef, apt.Status)
			return fmt.Errorf("%w: appointment=%s, status=%s", ErrInvalidState, req.AppointmentRef, apt.Status)
		}

		booking := uc.buildBooking(apt, req)

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateReference) {
				uc.logger.Error("ConvertAppointment: booking reference collision for appointment=%s", req.AppointmentRef)
				return fmt.Errorf("%w: booking reference collision: %v", ErrInternal, err)
			}
			uc.logger.Error("ConvertAppointment: failed to create booking for appointment=%s: %v",
				req.AppointmentRef, err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// Условное обновление (status = completed AND converted_booking_ref
		// IS NULL) ловит гонку с параллельной конвертацией; транзакция
		// откатится вместе с созданным бронированием
		if err := uc.appointmentRepo.MarkConverted(txCtx, req.AppointmentRef, created.Reference); err != nil {
			if errors.Is(err, appointmentRepo.ErrStaleStatus) {
				uc.logger.Warn("ConvertAppointment: appointment=%s was modified concurrently", req.AppointmentRef)
				return fmt.Errorf("%w: appointment=%s", ErrConflict, req.AppointmentRef)
			}
			uc.logger.Error("ConvertAppointment: failed to mark appointment=%s converted: %v",
				req.AppointmentRef, err)
			return fmt.Errorf("%w: failed to mark appointment converted: %v", ErrInternal, err)
		}

		uc.logger.Info("ConvertAppointment: appointment=%s converted to booking=%s",
			req.AppointmentRef, created.Reference)
		result = buildResponse(req.AppointmentRef, created, false)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// buildBooking собирает драфт бронирования из заявки и согласованных условий
// Снимок цены замораживает согласованную цену как итог: скидка и сервисный
// сбор уже учтены в переговорах
func (uc *UseCase) buildBooking(apt *domain.Appointment, req *Request) *domain.Booking {
	travelers := apt.Travelers
	if req.Travelers != nil {
		travelers = *req.Travelers
	}

	currency := uc.defaultCurrency
	if req.Currency != nil && *req.Currency != "" {
		currency = *req.Currency
	}

	return &domain.Booking{
		Reference:     domain.NewBookingRef(),
		CustomerName:  apt.CustomerName,
		CustomerEmail: apt.CustomerEmail,
		CustomerPhone: apt.CustomerPhone,
		Travelers:     travelers,
		TripRef:       apt.TripRef,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Pricing: domain.PricingSnapshot{
			BaseAmount:  req.FinalPrice,
			FinalAmount: req.FinalPrice,
			Currency:    currency,
		},
		TotalPaid:      0,
		PaymentStatus:  domain.PaymentPending,
		Status:         domain.BookingDraft,
		SourceChannel:  apt.SourceChannel,
		AppointmentRef: ptr.Ptr(apt.Reference),
	}
}

// buildResponse собирает ответ из созданного или найденного бронирования
func buildResponse(appointmentRef string, booking *domain.Booking, alreadyConverted bool) *Response {
	return &Response{
		AppointmentRef:   appointmentRef,
		BookingRef:       booking.Reference,
		BookingStatus:    string(booking.Status),
		FinalAmount:      booking.Pricing.FinalAmount,
		Currency:         booking.Pricing.Currency,
		Travelers:        booking.Travelers,
		StartDate:        booking.StartDate,
		EndDate:          booking.EndDate,
		CreatedAt:        booking.CreatedAt,
		AlreadyConverted: alreadyConverted,
	}
}
