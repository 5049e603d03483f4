package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgIllegalTransition  = "переход в запрошенный статус невозможен"
	msgPaymentIncomplete  = "бронирование не полностью оплачено"
	msgConcurrentConflict = "бронирование было изменено параллельно, повторите запрос"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{reference}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{reference}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{reference}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.TransitionRequest{
		Status:         req.Status,
		ManualOverride: req.ManualOverride,
		OverrideReason: req.OverrideReason,
		ActorID:        actorID,
	}

	result, err := h.service.Transition(r.Context(), reference, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{reference}/status - Booking not found: ref=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrPaymentIncomplete):
			h.logger.Warn("PATCH /bookings/{reference}/status - Payment incomplete: ref=%s, status=%s",
				reference, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPaymentIncomplete)

		case errors.Is(err, bookings.ErrIllegalTransition):
			h.logger.Warn("PATCH /bookings/{reference}/status - Illegal transition: ref=%s, status=%s",
				reference, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgIllegalTransition)

		case errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("PATCH /bookings/{reference}/status - Concurrent modification: ref=%s", reference)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{reference}/status - Invalid status: ref=%s, status=%q",
				reference, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{reference}/status - Failed to update status: ref=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{reference}/status - Status updated successfully: ref=%s, status=%s, actor=%d",
		reference, result.Status, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
