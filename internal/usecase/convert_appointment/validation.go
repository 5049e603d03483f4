package convert_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.AppointmentRef) == "" {
		return fmt.Errorf("%w: appointment reference is required", ErrInvalidInput)
	}

	if req.FinalPrice <= 0 {
		return fmt.Errorf("%w: final price must be positive, got %.2f", ErrInvalidInput, req.FinalPrice)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}

	if req.Travelers != nil && *req.Travelers < domain.MinTravelers {
		return fmt.Errorf("%w: travelers must be at least %d", ErrInvalidInput, domain.MinTravelers)
	}

	return nil
}
