package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

const msgInvalidStatus = "некорректный фильтр статуса"

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

// Handle GET /api/v1/appointments?status=&tripRef=&sourceChannel=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if tripRef := query.Get("tripRef"); tripRef != "" {
		req.TripRef = &tripRef
	}
	if channel := query.Get("sourceChannel"); channel != "" {
		req.SourceChannel = &channel
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Listed %d appointments", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
