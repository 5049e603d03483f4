package tripcatalog

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TripPackage модель турпакета из TripCatalogService
type TripPackage struct {
	Reference      string  `json:"reference"`
	Name           string  `json:"name"`
	PricePerPerson float64 `json:"price_per_person"`
	NominalDays    int     `json:"nominal_days"`
	MaxGroupSize   int     `json:"max_group_size"` // 0 = без ограничения
	DiscountAmount float64 `json:"discount_amount"`
	Currency       string  `json:"currency"`
	IsActive       bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от TripCatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
