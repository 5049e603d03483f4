package convert_appointment

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	convertAppointment "github.com/m04kA/SMC-ReservationService/internal/usecase/convert_appointment"
)

// ConvertAppointmentRequest HTTP request model
type ConvertAppointmentRequest struct {
	FinalPrice float64 `json:"finalPrice"`
	Currency   *string `json:"currency,omitempty"`
	StartDate  string  `json:"startDate"` // "2026-10-01"
	EndDate    string  `json:"endDate"`   // "2026-10-13"
	Travelers  *int    `json:"travelers,omitempty"`
}

// ConversionResponse HTTP response model
type ConversionResponse struct {
	AppointmentRef   string  `json:"appointmentRef"`
	BookingRef       string  `json:"bookingRef"`
	BookingStatus    string  `json:"bookingStatus"`
	FinalAmount      float64 `json:"finalAmount"`
	Currency         string  `json:"currency"`
	Travelers        int     `json:"travelers"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	CreatedAt        string  `json:"createdAt"`
	AlreadyConverted bool    `json:"alreadyConverted"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConvertAppointmentRequest) ToUseCaseRequest(appointmentRef string, actorID int64) (*convertAppointment.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &convertAppointment.Request{
		AppointmentRef: appointmentRef,
		FinalPrice:     r.FinalPrice,
		Currency:       r.Currency,
		StartDate:      startDate,
		EndDate:        endDate,
		Travelers:      r.Travelers,
		ActorID:        actorID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *convertAppointment.Response) *ConversionResponse {
	return &ConversionResponse{
		AppointmentRef:   resp.AppointmentRef,
		BookingRef:       resp.BookingRef,
		BookingStatus:    resp.BookingStatus,
		FinalAmount:      resp.FinalAmount,
		Currency:         resp.Currency,
		Travelers:        resp.Travelers,
		StartDate:        resp.StartDate.Format(domain.DateFormat),
		EndDate:          resp.EndDate.Format(domain.DateFormat),
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		AlreadyConverted: resp.AlreadyConverted,
	}
}
