package domain

import "time"

// AppointmentStatus represents the status of a consultation appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentConverted AppointmentStatus = "converted"
)

// Appointment represents a consultation request made by a customer
// prior to any binding trip purchase
type Appointment struct {
	Reference string // "APT-XXXXXXXX", unique, human-readable

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Travelers     int

	TripRef       string
	PreferredDate time.Time
	PreferredTime *string // "10:00", optional

	EstimatedPrice *float64
	Status         AppointmentStatus
	SourceChannel  string

	// Reference to the booking produced by conversion.
	// Set exactly once; an appointment can be converted at most once.
	ConvertedBookingRef *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentCancelled || a.Status == AppointmentConverted
}

// IsConverted returns true if the appointment has already produced a booking
func (a *Appointment) IsConverted() bool {
	return a.Status == AppointmentConverted || a.ConvertedBookingRef != nil
}

// CanBeConverted returns true if the appointment is eligible for conversion
func (a *Appointment) CanBeConverted() bool {
	return a.Status == AppointmentCompleted && a.ConvertedBookingRef == nil
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentConfirmed
}

// AppointmentsFilter фильтр для получения списка заявок
type AppointmentsFilter struct {
	Status        *AppointmentStatus // Фильтр по статусу (опционально)
	TripRef       *string            // Фильтр по туру (опционально)
	SourceChannel *string            // Фильтр по каналу (опционально)
}
