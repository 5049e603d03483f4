package record_payment

import (
	"time"

	recordPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
	Note          *string `json:"note,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	BookingRef      string  `json:"bookingRef"`
	PaymentID       int64   `json:"paymentId"`
	Amount          float64 `json:"amount"`
	Method          string  `json:"method"`
	TransactionID   string  `json:"transactionId"`
	Note            *string `json:"note,omitempty"`
	RecordedAt      string  `json:"recordedAt"`
	TotalPaid       float64 `json:"totalPaid"`
	RemainingAmount float64 `json:"remainingAmount"`
	PaymentStatus   string  `json:"paymentStatus"`
	BookingStatus   string  `json:"bookingStatus"`
	Duplicate       bool    `json:"duplicate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecordPaymentRequest) ToUseCaseRequest(bookingRef string, actorID int64) *recordPayment.Request {
	return &recordPayment.Request{
		BookingRef:    bookingRef,
		Amount:        r.Amount,
		Method:        r.Method,
		TransactionID: r.TransactionID,
		Note:          r.Note,
		ActorID:       actorID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		BookingRef:      resp.BookingRef,
		PaymentID:       resp.PaymentID,
		Amount:          resp.Amount,
		Method:          resp.Method,
		TransactionID:   resp.TransactionID,
		Note:            resp.Note,
		RecordedAt:      resp.RecordedAt.Format(time.RFC3339),
		TotalPaid:       resp.TotalPaid,
		RemainingAmount: resp.RemainingAmount,
		PaymentStatus:   resp.PaymentStatus,
		BookingStatus:   resp.BookingStatus,
		Duplicate:       resp.Duplicate,
	}
}
