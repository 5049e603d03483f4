package get_trip_quote

import (
	"context"

	quoteTrip "github.com/m04kA/SMC-ReservationService/internal/usecase/quote_trip"
)

type QuoteTripUseCase interface {
	Execute(ctx context.Context, req *quoteTrip.Request) (*quoteTrip.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
