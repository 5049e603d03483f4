package quote_trip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/tripcatalog"
)

// UseCase use case расчёта стоимости турпакета
type UseCase struct {
	catalog    TripCatalogClient
	serviceFee float64
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog TripCatalogClient, serviceFee float64, logger Logger) *UseCase {
	if serviceFee <= 0 {
		serviceFee = domain.DefaultServiceFee
	}
	return &UseCase{
		catalog:    catalog,
		serviceFee: serviceFee,
		logger:     logger,
	}
}

// Execute выполняет расчёт стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteTrip: trip=%s, range=%s..%s, travelers=%d",
		req.TripRef, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Travelers)

	if strings.TrimSpace(req.TripRef) == "" {
		uc.logger.Warn("QuoteTrip: empty trip reference")
		return nil, fmt.Errorf("%w: trip reference is required", ErrInvalidInput)
	}

	trip, err := uc.catalog.GetTrip(ctx, req.TripRef)
	if err != nil {
		if errors.Is(err, catalogClient.ErrTripNotFound) {
			uc.logger.Warn("QuoteTrip: trip=%s not found", req.TripRef)
			return nil, ErrTripNotFound
		}
		uc.logger.Error("QuoteTrip: failed to get trip=%s: %v", req.TripRef, err)
		return nil, fmt.Errorf("%w: failed to get trip package: %v", ErrInternal, err)
	}

	if !trip.IsActive || trip.PricePerPerson <= 0 {
		uc.logger.Warn("QuoteTrip: trip=%s is not bookable (active=%v, price=%.2f)",
			req.TripRef, trip.IsActive, trip.PricePerPerson)
		return nil, ErrTripNotBookable
	}

	result := quote(trip, req.StartDate, req.EndDate, req.Travelers, uc.serviceFee)

	if result.UsedNominalDuration {
		uc.logger.Warn("QuoteTrip: invalid date range for trip=%s, quoted nominal duration of %d days",
			req.TripRef, result.TripDays)
	}

	uc.logger.Info("QuoteTrip: trip=%s, repetitions=%d, total=%.2f %s",
		req.TripRef, result.Repetitions, result.Total, result.Currency)

	return result, nil
}
