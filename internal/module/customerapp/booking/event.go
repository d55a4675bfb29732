package booking

import "time"

// BookingConfirmedEvent is published after a checkout commits.
type BookingConfirmedEvent struct {
	Booking
}

// BookingCancelledEvent is published after a booking is cancelled.
type BookingCancelledEvent struct {
	Booking
}

// RemindBookingEvent is the deferred task payload that triggers the
// pre-appointment reminder.
type RemindBookingEvent struct {
	ID      string    `json:"id"`
	StartAt time.Time `json:"start_at"`
}
