package tripcatalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с TripCatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TripCatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTrip получает определение турпакета по reference коду
func (c *Client) GetTrip(ctx context.Context, tripRef string) (*TripPackage, error) {
	reqURL := fmt.Sprintf("%s/internal/trips/%s", c.baseURL, url.PathEscape(tripRef))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid trip reference format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrTripNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var trip TripPackage
	if err := json.NewDecoder(resp.Body).Decode(&trip); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &trip, nil
}

// GetTripWithGracefulDegradation получает турпакет с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded - вызывающая
// сторона может продолжить работу с сохранённым снапшотом цены
func (c *Client) GetTripWithGracefulDegradation(ctx context.Context, tripRef string) (*TripPackage, error) {
	c.log.Info("Fetching trip package trip_ref=%s", tripRef)

	trip, err := c.GetTrip(ctx, tripRef)
	if err != nil {
		// Бизнес-ошибку (тур не найден) пробрасываем дальше
		if errors.Is(err, ErrTripNotFound) {
			c.log.Info("Trip package not found trip_ref=%s", tripRef)
			return nil, err
		}

		// Для остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("TripCatalogService unavailable, applying graceful degradation for trip_ref=%s: %v", tripRef, err)
		return nil, fmt.Errorf("%w: trip_ref=%s, error=%v", ErrServiceDegraded, tripRef, err)
	}

	c.log.Info("Successfully fetched trip package trip_ref=%s, nominal_days=%d", tripRef, trip.NominalDays)
	return trip, nil
}
