package record_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// amountEpsilon допуск при сравнении денежных сумм в float64
const amountEpsilon = 0.005

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingRef) == "" {
		return fmt.Errorf("%w: booking reference is required", ErrInvalidInput)
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, req.Amount)
	}

	if strings.TrimSpace(req.TransactionID) == "" {
		return fmt.Errorf("%w: transaction id is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Method) == "" {
		return fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}
	if len(req.Method) > domain.MaxMethodLength {
		return fmt.Errorf("%w: payment method is too long", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// exceedsRemaining проверяет, превысит ли платёж остаток по бронированию
func exceedsRemaining(amount, remaining float64) bool {
	return amount > remaining+amountEpsilon
}
