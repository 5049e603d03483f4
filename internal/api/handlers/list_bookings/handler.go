package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidStatus = "некорректный фильтр статуса"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/bookings?status=&tripRef=&startDate=&endDate=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if tripRef := query.Get("tripRef"); tripRef != "" {
		req.TripRef = &tripRef
	}
	if query.Get("includeCancelled") == "true" {
		req.IncludeCancelled = true
	}

	if startDate := query.Get("startDate"); startDate != "" {
		parsed, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &parsed
	}
	if endDate := query.Get("endDate"); endDate != "" {
		parsed, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &parsed
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Listed %d bookings", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
