package quote_trip

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/tripcatalog"
)

// TripCatalogClient интерфейс клиента для TripCatalogService
type TripCatalogClient interface {
	GetTrip(ctx context.Context, tripRef string) (*tripcatalog.TripPackage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
