package update_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

type AppointmentService interface {
	Transition(ctx context.Context, reference string, req *models.TransitionRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
