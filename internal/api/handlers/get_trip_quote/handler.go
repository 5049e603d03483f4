package get_trip_quote

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	quoteTrip "github.com/m04kA/SMC-ReservationService/internal/usecase/quote_trip"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTravelers = "некорректное количество путешественников"
	msgInvalidInput     = "некорректные параметры расчёта"
	msgTripNotFound     = "турпакет не найден"
	msgTripNotBookable  = "турпакет недоступен для бронирования"
)

type Handler struct {
	useCase QuoteTripUseCase
	logger  Logger
}

func NewHandler(useCase QuoteTripUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trips/{tripRef}/quote?startDate=&endDate=&travelers=
// Расчёт чистый: никакие данные не изменяются, эндпоинт можно дёргать
// на каждое изменение формы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tripRef := vars["tripRef"]

	query := r.URL.Query()

	var startDate, endDate time.Time
	var err error

	if raw := query.Get("startDate"); raw != "" {
		startDate, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /trips/{tripRef}/quote - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if raw := query.Get("endDate"); raw != "" {
		endDate, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /trips/{tripRef}/quote - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	travelers := 1
	if raw := query.Get("travelers"); raw != "" {
		travelers, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /trips/{tripRef}/quote - Invalid travelers: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTravelers)
			return
		}
	}

	req := &quoteTrip.Request{
		TripRef:   tripRef,
		StartDate: startDate,
		EndDate:   endDate,
		Travelers: travelers,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, quoteTrip.ErrTripNotFound):
			h.logger.Warn("GET /trips/{tripRef}/quote - Trip not found: trip_ref=%s", tripRef)
			handlers.RespondNotFound(w, msgTripNotFound)

		case errors.Is(err, quoteTrip.ErrTripNotBookable):
			h.logger.Warn("GET /trips/{tripRef}/quote - Trip not bookable: trip_ref=%s", tripRef)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTripNotBookable)

		case errors.Is(err, quoteTrip.ErrInvalidInput):
			h.logger.Warn("GET /trips/{tripRef}/quote - Invalid input: trip_ref=%s, error=%v", tripRef, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /trips/{tripRef}/quote - Failed to quote: trip_ref=%s, error=%v", tripRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /trips/{tripRef}/quote - Quote calculated: trip_ref=%s, total=%.2f %s",
		tripRef, result.Total, result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
