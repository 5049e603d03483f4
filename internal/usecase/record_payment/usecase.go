package record_payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// UseCase use case записи платежа в журнал бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute записывает платёж и пересчитывает статус оплаты
// Выполняется в сериализуемой транзакции: два администратора, записывающие
// платежи по одному бронированию одновременно, не могут задвоить сумму
// или превысить итог
//
// Правила:
//   - платёж с уже известным transaction_id обрабатывается идемпотентно
//   - платёж, превышающий остаток, отклоняется целиком (журнал не меняется)
//   - при полной оплате бронирование автоматически переводится в
//     payment_received через таблицу переходов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: booking=%s, amount=%.2f, txn=%s, actor=%d",
		req.BookingRef, req.Amount, req.TransactionID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByReference(txCtx, req.BookingRef)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RecordPayment: booking=%s not found", req.BookingRef)
				return ErrBookingNotFound
			}
			uc.logger.Error("RecordPayment: failed to get booking=%s: %v", req.BookingRef, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.IsTerminal() {
			uc.logger.Warn("RecordPayment: booking=%s is in terminal status=%s", req.BookingRef, booking.Status)
			return fmt.Errorf("%w: booking=%s, status=%s", ErrBookingNotPayable, req.BookingRef, booking.Status)
		}

		// Идемпотентность: transaction_id уже записан - возвращаем
		// текущее состояние без изменения журнала
		existing, err := uc.bookingRepo.GetPaymentByTransactionID(txCtx, req.BookingRef, req.TransactionID)
		if err != nil && !errors.Is(err, bookingRepo.ErrPaymentNotFound) {
			uc.logger.Error("RecordPayment: failed to check txn=%s: %v", req.TransactionID, err)
			return fmt.Errorf("%w: failed to check transaction: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Info("RecordPayment: txn=%s already recorded for booking=%s, idempotent replay",
				req.TransactionID, req.BookingRef)
			result = buildResponse(booking, existing, true)
			return nil
		}

		// Переплата отклоняется целиком: молчаливый приём сломал бы
		// инвариант totalPaid <= finalAmount
		remaining := booking.RemainingAmount()
		if exceedsRemaining(req.Amount, remaining) {
			uc.logger.Warn("RecordPayment: overpayment rejected for booking=%s: amount=%.2f, remaining=%.2f",
				req.BookingRef, req.Amount, remaining)
			return fmt.Errorf("%w: booking=%s, amount=%.2f, remaining=%.2f %s",
				ErrOverpayment, req.BookingRef, req.Amount, remaining, booking.Pricing.Currency)
		}

		payment := &domain.PaymentRecord{
			BookingRef:    req.BookingRef,
			Amount:        req.Amount,
			Method:        req.Method,
			TransactionID: req.TransactionID,
			Note:          req.Note,
		}

		recorded, err := uc.bookingRepo.AddPayment(txCtx, payment)
		if err != nil {
			// Гонка по transaction_id внутри уникального индекса -
			// конкурирующая запись успела первой, повторяем идемпотентно
			if errors.Is(err, bookingRepo.ErrDuplicateTransaction) {
				uc.logger.Warn("RecordPayment: concurrent duplicate txn=%s for booking=%s",
					req.TransactionID, req.BookingRef)
				dup, dupErr := uc.bookingRepo.GetPaymentByTransactionID(txCtx, req.BookingRef, req.TransactionID)
				if dupErr != nil {
					return fmt.Errorf("%w: failed to load duplicate transaction: %v", ErrInternal, dupErr)
				}
				result = buildResponse(booking, dup, true)
				return nil
			}
			uc.logger.Error("RecordPayment: failed to add payment for booking=%s: %v", req.BookingRef, err)
			return fmt.Errorf("%w: failed to add payment: %v", ErrInternal, err)
		}

		// Пересчитываем денормализованные суммы
		newTotal := round2(booking.TotalPaid + req.Amount)
		newPaymentStatus := domain.DerivePaymentStatus(newTotal, booking.Pricing.FinalAmount)

		if err := uc.bookingRepo.UpdatePaymentTotals(txCtx, req.BookingRef, newTotal, newPaymentStatus); err != nil {
			uc.logger.Error("RecordPayment: failed to update totals for booking=%s: %v", req.BookingRef, err)
			return fmt.Errorf("%w: failed to update totals: %v", ErrInternal, err)
		}

		booking.TotalPaid = newTotal
		booking.PaymentStatus = newPaymentStatus

		// Полная оплата автоматически продвигает бронирование в
		// payment_received - оплата и статус никогда не расходятся
		if newPaymentStatus == domain.PaymentCompleted &&
			booking.Status != domain.BookingPaymentReceived &&
			booking.Status.CanTransitionTo(domain.BookingPaymentReceived) {

			if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingRef, booking.Status, domain.BookingPaymentReceived); err != nil {
				uc.logger.Error("RecordPayment: failed to advance booking=%s to payment_received: %v",
					req.BookingRef, err)
				return fmt.Errorf("%w: failed to advance booking status: %v", ErrInternal, err)
			}

			uc.logger.Info("RecordPayment: booking=%s fully paid, advanced %s -> %s",
				req.BookingRef, booking.Status, domain.BookingPaymentReceived)
			booking.Status = domain.BookingPaymentReceived
		}

		result = buildResponse(booking, recorded, false)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecordPayment: booking=%s, total_paid=%.2f, payment_status=%s, duplicate=%v",
		result.BookingRef, result.TotalPaid, result.PaymentStatus, result.Duplicate)

	return result, nil
}

// buildResponse собирает ответ из состояния бронирования и записи платежа
func buildResponse(booking *domain.Booking, payment *domain.PaymentRecord, duplicate bool) *Response {
	return &Response{
		BookingRef:      booking.Reference,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		Method:          payment.Method,
		TransactionID:   payment.TransactionID,
		Note:            payment.Note,
		RecordedAt:      payment.CreatedAt,
		TotalPaid:       booking.TotalPaid,
		RemainingAmount: booking.RemainingAmount(),
		PaymentStatus:   string(booking.PaymentStatus),
		BookingStatus:   string(booking.Status),
		Duplicate:       duplicate,
	}
}

// round2 округляет денежную сумму до двух знаков
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
