package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CreateAppointmentRequest запрос на создание заявки на консультацию
type CreateAppointmentRequest struct {
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Travelers      int
	TripRef        string
	PreferredDate  time.Time
	PreferredTime  *string
	EstimatedPrice *float64
	SourceChannel  string
}

// TransitionRequest запрос на смену статуса заявки
type TransitionRequest struct {
	Status string
}

// ListAppointmentsRequest запрос на получение списка заявок
type ListAppointmentsRequest struct {
	Status        *string
	TripRef       *string
	SourceChannel *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		TripRef:       r.TripRef,
		SourceChannel: r.SourceChannel,
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return domain.AppointmentsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse представление заявки для вызывающей стороны
type AppointmentResponse struct {
	Reference           string    `json:"reference"`
	CustomerName        string    `json:"customerName"`
	CustomerEmail       string    `json:"customerEmail"`
	CustomerPhone       string    `json:"customerPhone"`
	Travelers           int       `json:"travelers"`
	TripRef             string    `json:"tripRef"`
	PreferredDate       time.Time `json:"preferredDate"`
	PreferredTime       *string   `json:"preferredTime,omitempty"`
	EstimatedPrice      *float64  `json:"estimatedPrice,omitempty"`
	Status              string    `json:"status"`
	SourceChannel       string    `json:"sourceChannel,omitempty"`
	ConvertedBookingRef *string   `json:"convertedBookingRef,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// AppointmentListResponse список заявок
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную модель в response
func FromDomainAppointment(apt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		Reference:           apt.Reference,
		CustomerName:        apt.CustomerName,
		CustomerEmail:       apt.CustomerEmail,
		CustomerPhone:       apt.CustomerPhone,
		Travelers:           apt.Travelers,
		TripRef:             apt.TripRef,
		PreferredDate:       apt.PreferredDate,
		PreferredTime:       apt.PreferredTime,
		EstimatedPrice:      apt.EstimatedPrice,
		Status:              string(apt.Status),
		SourceChannel:       apt.SourceChannel,
		ConvertedBookingRef: apt.ConvertedBookingRef,
		CreatedAt:           apt.CreatedAt,
		UpdatedAt:           apt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, apt := range appointments {
		result = append(result, FromDomainAppointment(apt))
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}
