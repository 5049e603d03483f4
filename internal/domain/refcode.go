package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	appointmentRefPrefix = "APT"
	bookingRefPrefix     = "BKG"
)

// NewAppointmentRef generates a unique human-readable appointment reference,
// e.g. "APT-9F2C41AB"
func NewAppointmentRef() string {
	return newRef(appointmentRefPrefix)
}

// NewBookingRef generates a unique human-readable booking reference,
// e.g. "BKG-5D11E0C7"
func NewBookingRef() string {
	return newRef(bookingRefPrefix)
}

func newRef(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, id[:8])
}
