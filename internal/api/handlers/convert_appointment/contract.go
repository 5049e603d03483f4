package convert_appointment

import (
	"context"

	convertAppointment "github.com/m04kA/SMC-ReservationService/internal/usecase/convert_appointment"
)

type ConvertAppointmentUseCase interface {
	Execute(ctx context.Context, req *convertAppointment.Request) (*convertAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
