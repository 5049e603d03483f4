package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	Status string
	// ManualOverride позволяет менеджеру перевести бронирование в статус,
	// требующий полной оплаты, при наличии остатка (логируется)
	ManualOverride bool
	OverrideReason string
	ActorID        int64
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status           *string
	TripRef          *string
	StartDate        *time.Time
	EndDate          *time.Time
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TripRef:          r.TripRef,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return domain.BookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PricingResponse снапшот цены бронирования
type PricingResponse struct {
	BaseAmount     float64 `json:"baseAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	ServiceFee     float64 `json:"serviceFee"`
	FinalAmount    float64 `json:"finalAmount"`
	Currency       string  `json:"currency"`
}

// PaymentResponse запись журнала платежей
type PaymentResponse struct {
	ID            int64     `json:"id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transactionId"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookingResponse представление бронирования для вызывающей стороны
type BookingResponse struct {
	Reference       string             `json:"reference"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	Travelers       int                `json:"travelers"`
	TripRef         string             `json:"tripRef"`
	StartDate       time.Time          `json:"startDate"`
	EndDate         time.Time          `json:"endDate"`
	Pricing         PricingResponse    `json:"pricing"`
	TotalPaid       float64            `json:"totalPaid"`
	RemainingAmount float64            `json:"remainingAmount"`
	PaymentStatus   string             `json:"paymentStatus"`
	Status          string             `json:"status"`
	SourceChannel   string             `json:"sourceChannel,omitempty"`
	AppointmentRef  *string            `json:"appointmentRef,omitempty"`
	Payments        []*PaymentResponse `json:"payments"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		Reference:     b.Reference,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Travelers:     b.Travelers,
		TripRef:       b.TripRef,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Pricing: PricingResponse{
			BaseAmount:     b.Pricing.BaseAmount,
			DiscountAmount: b.Pricing.DiscountAmount,
			ServiceFee:     b.Pricing.ServiceFee,
			FinalAmount:    b.Pricing.FinalAmount,
			Currency:       b.Pricing.Currency,
		},
		TotalPaid:       b.TotalPaid,
		RemainingAmount: b.RemainingAmount(),
		PaymentStatus:   string(b.PaymentStatus),
		Status:          string(b.Status),
		SourceChannel:   b.SourceChannel,
		AppointmentRef:  b.AppointmentRef,
		Payments:        make([]*PaymentResponse, 0),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingWithPayments конвертирует бронирование вместе с журналом платежей
func FromDomainBookingWithPayments(b *domain.Booking, payments []*domain.PaymentRecord) *BookingResponse {
	resp := FromDomainBooking(b)
	for _, p := range payments {
		resp.Payments = append(resp.Payments, &PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			Method:        p.Method,
			TransactionID: p.TransactionID,
			Note:          p.Note,
			CreatedAt:     p.CreatedAt,
		})
	}
	return resp
}

// FromDomainBookingList конвертирует список доменных моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
