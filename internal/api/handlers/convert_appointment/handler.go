package convert_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	convertAppointment "github.com/m04kA/SMC-ReservationService/internal/usecase/convert_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные конверсии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "заявка не найдена"
	msgInvalidState       = "заявка не готова к конверсии"
	msgConcurrentConflict = "заявка была изменена параллельно, повторите запрос"
)

type Handler struct {
	useCase ConvertAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ConvertAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{reference}/convert
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{reference}/convert - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConvertAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{reference}/convert - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reference, actorID)
	if err != nil {
		h.logger.Warn("POST /appointments/{reference}/convert - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, convertAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{reference}/convert - Appointment not found: ref=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, convertAppointment.ErrInvalidState):
			h.logger.Warn("POST /appointments/{reference}/convert - Appointment not convertible: ref=%s", reference)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidState)

		case errors.Is(err, convertAppointment.ErrConflict):
			h.logger.Warn("POST /appointments/{reference}/convert - Concurrent modification: ref=%s", reference)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)

		case errors.Is(err, convertAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{reference}/convert - Invalid input: ref=%s, error=%v", reference, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{reference}/convert - Failed to convert: ref=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyConverted {
		status = http.StatusOK
	}

	h.logger.Info("POST /appointments/{reference}/convert - Converted successfully: ref=%s, booking=%s, actor=%d",
		reference, result.BookingRef, actorID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
