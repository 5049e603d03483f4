package domain

import "fmt"

// Transition tables are the single authority on status changes.
// Anything not listed here is illegal; a transition to the current
// status is a no-op success, not an error.

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled: {AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
	AppointmentCompleted: {AppointmentConverted},
	AppointmentCancelled: {},
	AppointmentConverted: {},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingDraft:           {BookingPendingPayment, BookingCancelled},
	BookingPendingPayment:  {BookingPaymentReceived, BookingCancelled},
	BookingPaymentReceived: {BookingConfirmed, BookingCancelled},
	BookingConfirmed:       {BookingCompleted, BookingCancelled},
	BookingCompleted:       {},
	BookingCancelled:       {},
}

// CanTransitionTo returns true if target is reachable from s
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if s == target {
		return true
	}
	for _, next := range appointmentTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Successors returns the set of states legally reachable from s
func (s AppointmentStatus) Successors() []AppointmentStatus {
	return appointmentTransitions[s]
}

// IsValid returns true if s is a known appointment status
func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// CanTransitionTo returns true if target is reachable from s
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return true
	}
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Successors returns the set of states legally reachable from s
func (s BookingStatus) Successors() []BookingStatus {
	return bookingTransitions[s]
}

// IsValid returns true if s is a known booking status
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// RequiresFullPayment returns true for states that must not be reached
// while the booking still has an outstanding balance (unless an explicit
// manual override is supplied)
func (s BookingStatus) RequiresFullPayment() bool {
	return s == BookingPaymentReceived || s == BookingConfirmed || s == BookingCompleted
}

// ParseAppointmentStatus converts a raw string into an AppointmentStatus
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	s := AppointmentStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown appointment status %q", raw)
	}
	return s, nil
}

// ParseBookingStatus converts a raw string into a BookingStatus
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}
