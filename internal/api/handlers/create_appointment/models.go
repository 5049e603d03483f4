package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail"`
	CustomerPhone  string   `json:"customerPhone"`
	Travelers      int      `json:"travelers"`
	TripRef        string   `json:"tripRef"`
	PreferredDate  string   `json:"preferredDate"` // "2026-09-10"
	PreferredTime  *string  `json:"preferredTime,omitempty"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty"`
	SourceChannel  string   `json:"sourceChannel,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAppointmentRequest) ToServiceRequest() (*models.CreateAppointmentRequest, error) {
	preferredDate, err := time.Parse(domain.DateFormat, r.PreferredDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateAppointmentRequest{
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		Travelers:      r.Travelers,
		TripRef:        r.TripRef,
		PreferredDate:  preferredDate,
		PreferredTime:  r.PreferredTime,
		EstimatedPrice: r.EstimatedPrice,
		SourceChannel:  r.SourceChannel,
	}, nil
}
