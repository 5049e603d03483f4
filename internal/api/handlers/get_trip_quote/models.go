package get_trip_quote

import (
	quoteTrip "github.com/m04kA/SMC-ReservationService/internal/usecase/quote_trip"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	TripRef             string  `json:"tripRef"`
	TripName            string  `json:"tripName"`
	TripDays            int     `json:"tripDays"`
	Repetitions         int     `json:"repetitions"`
	Travelers           int     `json:"travelers"`
	Subtotal            float64 `json:"subtotal"`
	Discount            float64 `json:"discount"`
	ServiceFee          float64 `json:"serviceFee"`
	Total               float64 `json:"total"`
	Currency            string  `json:"currency"`
	UsedNominalDuration bool    `json:"usedNominalDuration"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteTrip.Response) *QuoteResponse {
	return &QuoteResponse{
		TripRef:             resp.TripRef,
		TripName:            resp.TripName,
		TripDays:            resp.TripDays,
		Repetitions:         resp.Repetitions,
		Travelers:           resp.Travelers,
		Subtotal:            resp.Subtotal,
		Discount:            resp.Discount,
		ServiceFee:          resp.ServiceFee,
		Total:               resp.Total,
		Currency:            resp.Currency,
		UsedNominalDuration: resp.UsedNominalDuration,
	}
}
