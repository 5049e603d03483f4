package record_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	recordPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/record_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные платежа"
	msgInvalidAmount      = "сумма платежа должна быть положительной"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgNotPayable         = "бронирование в финальном статусе, платежи не принимаются"
	msgOverpayment        = "платёж превышает остаток по бронированию"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{reference}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{reference}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{reference}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reference, actorID))
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{reference}/payments - Booking not found: ref=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recordPayment.ErrBookingNotPayable):
			h.logger.Warn("POST /bookings/{reference}/payments - Booking not payable: ref=%s", reference)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotPayable)

		case errors.Is(err, recordPayment.ErrOverpayment):
			h.logger.Warn("POST /bookings/{reference}/payments - Overpayment rejected: ref=%s, amount=%.2f",
				reference, req.Amount)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOverpayment)

		case errors.Is(err, recordPayment.ErrInvalidAmount):
			h.logger.Warn("POST /bookings/{reference}/payments - Invalid amount: ref=%s, amount=%.2f",
				reference, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{reference}/payments - Invalid input: ref=%s, error=%v", reference, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{reference}/payments - Failed to record payment: ref=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings/{reference}/payments - Payment recorded: ref=%s, amount=%.2f, total_paid=%.2f, actor=%d",
		reference, req.Amount, result.TotalPaid, actorID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
