package domain

// Default pricing values
const (
	// DefaultServiceFee is the flat per-booking service fee.
	// Not scaled by repetitions or travelers.
	DefaultServiceFee = 99.0

	DefaultCurrency = "USD"
)

// Business validation constants
const (
	MinTravelers        = 1
	MaxNoteLength       = 500
	MaxMethodLength     = 50
	MaxSourceChannelLen = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalAppointmentStatuses список финальных статусов заявок
var TerminalAppointmentStatuses = []AppointmentStatus{
	AppointmentCancelled,
	AppointmentConverted,
}

// TerminalBookingStatuses список финальных статусов бронирований
var TerminalBookingStatuses = []BookingStatus{
	BookingCompleted,
	BookingCancelled,
}
