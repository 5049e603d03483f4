package quote_trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/tripcatalog"
)

func alpsTrip() *tripcatalog.TripPackage {
	return &tripcatalog.TripPackage{
		Reference:      "TRIP-ALPS",
		Name:           "Alpine Trekking",
		PricePerPerson: 300,
		NominalDays:    5,
		MaxGroupSize:   10,
		Currency:       "USD",
		IsActive:       true,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuote_TwelveDayRangeForTwoTravelers(t *testing.T) {
	// $300/person, nominal 5 days, 12-day range, 2 travelers:
	// 3 repetitions, subtotal $1800, fee $99, total $1899
	result := quote(alpsTrip(), date(2025, 7, 1), date(2025, 7, 13), 2, 99)

	assert.Equal(t, 12, result.TripDays)
	assert.Equal(t, 3, result.Repetitions)
	assert.Equal(t, 2, result.Travelers)
	assert.InDelta(t, 1800.0, result.Subtotal, 0.001)
	assert.InDelta(t, 0.0, result.Discount, 0.001)
	assert.InDelta(t, 99.0, result.ServiceFee, 0.001)
	assert.InDelta(t, 1899.0, result.Total, 0.001)
	assert.False(t, result.UsedNominalDuration)
}

func TestQuote_RangeShorterThanNominal(t *testing.T) {
	// 3-day range against a 5-day package still pays one full repetition
	result := quote(alpsTrip(), date(2025, 7, 1), date(2025, 7, 4), 1, 99)

	assert.Equal(t, 3, result.TripDays)
	assert.Equal(t, 1, result.Repetitions)
	assert.InDelta(t, 399.0, result.Total, 0.001)
}

func TestQuote_InvalidRangeFallsBackToNominal(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"zero dates", time.Time{}, time.Time{}},
		{"reversed range", date(2025, 7, 13), date(2025, 7, 1)},
		{"zero-length range", date(2025, 7, 1), date(2025, 7, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := quote(alpsTrip(), tt.start, tt.end, 2, 99)

			assert.True(t, result.UsedNominalDuration)
			assert.Equal(t, 5, result.TripDays)
			assert.Equal(t, 1, result.Repetitions)
			assert.InDelta(t, 699.0, result.Total, 0.001) // 300*1*2 + 99
		})
	}
}

func TestQuote_DiscountNeverDropsTotalBelowServiceFee(t *testing.T) {
	trip := alpsTrip()
	trip.DiscountAmount = 5000 // больше любого subtotal

	result := quote(trip, date(2025, 7, 1), date(2025, 7, 6), 1, 99)

	assert.InDelta(t, 99.0, result.Total, 0.001)
}

func TestQuote_NegativeDiscountClampedToZero(t *testing.T) {
	trip := alpsTrip()
	trip.DiscountAmount = -50

	result := quote(trip, date(2025, 7, 1), date(2025, 7, 6), 1, 99)

	assert.InDelta(t, 0.0, result.Discount, 0.001)
	assert.InDelta(t, 399.0, result.Total, 0.001)
}

func TestQuote_TravelersClamped(t *testing.T) {
	result := quote(alpsTrip(), date(2025, 7, 1), date(2025, 7, 6), 0, 99)
	assert.Equal(t, 1, result.Travelers)

	result = quote(alpsTrip(), date(2025, 7, 1), date(2025, 7, 6), 25, 99)
	assert.Equal(t, 10, result.Travelers)
}

func TestQuote_UnlimitedGroupSize(t *testing.T) {
	trip := alpsTrip()
	trip.MaxGroupSize = 0

	result := quote(trip, date(2025, 7, 1), date(2025, 7, 6), 40, 99)
	assert.Equal(t, 40, result.Travelers)
}

func TestQuote_TotalNeverBelowServiceFee_Property(t *testing.T) {
	trip := alpsTrip()
	for _, discount := range []float64{0, 10, 300, 1799, 1800, 99999} {
		trip.DiscountAmount = discount
		for travelers := 1; travelers <= 10; travelers++ {
			for days := 1; days <= 30; days++ {
				result := quote(trip, date(2025, 7, 1), date(2025, 7, 1+days), travelers, 99)
				assert.GreaterOrEqual(t, result.Total, result.ServiceFee,
					"discount=%.0f travelers=%d days=%d", discount, travelers, days)
			}
		}
	}
}

func TestQuote_RepeatedCallsAreStable(t *testing.T) {
	first := quote(alpsTrip(), date(2025, 7, 1), date(2025, 7, 13), 2, 99)
	second := quote(alpsTrip(), date(2025, 7, 1), date(2025, 7, 13), 2, 99)

	assert.Equal(t, first, second)
}
