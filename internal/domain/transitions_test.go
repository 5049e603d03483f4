package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to confirmed", AppointmentScheduled, AppointmentConfirmed, true},
		{"scheduled to completed", AppointmentScheduled, AppointmentCompleted, true},
		{"scheduled to cancelled", AppointmentScheduled, AppointmentCancelled, true},
		{"scheduled to converted", AppointmentScheduled, AppointmentConverted, false},
		{"confirmed to completed", AppointmentConfirmed, AppointmentCompleted, true},
		{"confirmed to scheduled", AppointmentConfirmed, AppointmentScheduled, false},
		{"completed to converted", AppointmentCompleted, AppointmentConverted, true},
		{"completed to cancelled", AppointmentCompleted, AppointmentCancelled, false},
		{"cancelled to scheduled", AppointmentCancelled, AppointmentScheduled, false},
		{"cancelled is terminal", AppointmentCancelled, AppointmentCompleted, false},
		{"converted is terminal", AppointmentConverted, AppointmentCompleted, false},
		{"self transition is no-op", AppointmentScheduled, AppointmentScheduled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"draft to pending_payment", BookingDraft, BookingPendingPayment, true},
		{"pending_payment to payment_received", BookingPendingPayment, BookingPaymentReceived, true},
		{"payment_received to confirmed", BookingPaymentReceived, BookingConfirmed, true},
		{"confirmed to completed", BookingConfirmed, BookingCompleted, true},
		{"draft to confirmed skips chain", BookingDraft, BookingConfirmed, false},
		{"draft to completed skips chain", BookingDraft, BookingCompleted, false},
		{"confirmed to draft", BookingConfirmed, BookingDraft, false},
		{"self transition is no-op", BookingConfirmed, BookingConfirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingTransitions_CancelledReachableFromAnyNonTerminal(t *testing.T) {
	nonTerminal := []BookingStatus{BookingDraft, BookingPendingPayment, BookingPaymentReceived, BookingConfirmed}
	for _, from := range nonTerminal {
		assert.True(t, from.CanTransitionTo(BookingCancelled), "cancel from %s", from)
	}

	assert.False(t, BookingCompleted.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingDraft))
}

func TestBookingStatus_RequiresFullPayment(t *testing.T) {
	assert.True(t, BookingPaymentReceived.RequiresFullPayment())
	assert.True(t, BookingConfirmed.RequiresFullPayment())
	assert.True(t, BookingCompleted.RequiresFullPayment())
	assert.False(t, BookingDraft.RequiresFullPayment())
	assert.False(t, BookingPendingPayment.RequiresFullPayment())
	assert.False(t, BookingCancelled.RequiresFullPayment())
}

func TestParseAppointmentStatus(t *testing.T) {
	status, err := ParseAppointmentStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, AppointmentCompleted, status)

	_, err = ParseAppointmentStatus("shipped")
	assert.Error(t, err)
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("pending_payment")
	require.NoError(t, err)
	assert.Equal(t, BookingPendingPayment, status)

	_, err = ParseBookingStatus("")
	assert.Error(t, err)
}
