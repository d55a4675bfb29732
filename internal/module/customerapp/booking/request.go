package booking

import (
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

// CheckoutRequest confirms a draft as a booking. Unlike a quote, the draft
// must be complete enough to place on the timetable.
type CheckoutRequest struct {
	cart.RawDraft
}

type GetSlotsRequest struct {
	Branch string `validate:"required"`
	Date   string `validate:"required,datetime=2006-01-02"`
}
