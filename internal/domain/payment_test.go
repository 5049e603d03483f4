package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name        string
		totalPaid   float64
		finalAmount float64
		want        PaymentStatus
	}{
		{"nothing paid", 0, 1000, PaymentPending},
		{"partially paid", 400, 1000, PaymentPartial},
		{"fully paid", 1000, 1000, PaymentCompleted},
		{"zero amount booking", 0, 0, PaymentPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(tt.totalPaid, tt.finalAmount))
		})
	}
}

func TestBooking_RemainingAmount(t *testing.T) {
	b := Booking{
		Pricing:   PricingSnapshot{FinalAmount: 1000},
		TotalPaid: 400,
	}

	assert.InDelta(t, 600, b.RemainingAmount(), 0.001)
	assert.False(t, b.IsFullyPaid())

	b.TotalPaid = 1000
	assert.InDelta(t, 0, b.RemainingAmount(), 0.001)
	assert.True(t, b.IsFullyPaid())
}

func TestNewRefs(t *testing.T) {
	apt := NewAppointmentRef()
	bkg := NewBookingRef()

	assert.True(t, strings.HasPrefix(apt, "APT-"))
	assert.True(t, strings.HasPrefix(bkg, "BKG-"))
	assert.Len(t, apt, 12)
	assert.Len(t, bkg, 12)
	assert.NotEqual(t, NewAppointmentRef(), NewAppointmentRef())
}
