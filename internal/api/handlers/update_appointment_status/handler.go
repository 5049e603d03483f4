package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус заявки"
	msgNotFound           = "заявка не найдена"
	msgIllegalTransition  = "переход в запрошенный статус невозможен"
	msgConversionRequired = "статус converted устанавливается только через конверсию заявки"
	msgConcurrentConflict = "заявка была изменена параллельно, повторите запрос"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{reference}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{reference}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Transition(r.Context(), reference, &models.TransitionRequest{Status: req.Status})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{reference}/status - Appointment not found: ref=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrConversionRequired):
			h.logger.Warn("PATCH /appointments/{reference}/status - Direct conversion rejected: ref=%s", reference)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgConversionRequired)

		case errors.Is(err, appointments.ErrIllegalTransition):
			h.logger.Warn("PATCH /appointments/{reference}/status - Illegal transition: ref=%s, status=%s",
				reference, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgIllegalTransition)

		case errors.Is(err, appointments.ErrStatusConflict):
			h.logger.Warn("PATCH /appointments/{reference}/status - Concurrent modification: ref=%s", reference)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{reference}/status - Invalid status: ref=%s, status=%q",
				reference, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /appointments/{reference}/status - Failed to update status: ref=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{reference}/status - Status updated successfully: ref=%s, status=%s",
		reference, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
