package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/booking"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

func TestFactFromBooking(t *testing.T) {
	occurredAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	b := booking.Booking{
		ID:         "WB-1756728000000000",
		CustomerID: 42,
		Province:   "Western Cape",
		Branch:     "Cape Town CBD",
		Service:    "60 Min Therapy",
		Products: []cart.ProductLine{
			{Name: "Green Tea", Quantity: 2, Price: 79, LineTotal: 158},
			{Name: "Moringa", Quantity: 1, Price: 129, LineTotal: 129},
		},
		ServicePrice:     300,
		ProductsSubtotal: 287,
		PreDiscountTotal: 587,
		PromoCode:        "WELLNESS10",
		PromoSavings:     30,
		TotalAmount:      557,
		StartAt:          time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
	}

	f := FactFromBooking(EventTypeConfirmed, b, occurredAt)

	assert.Equal(t, "WB-1756728000000000", f.BookingID)
	assert.Equal(t, EventTypeConfirmed, f.EventType)
	assert.Equal(t, int64(3), f.ProductsQuantity)
	assert.Equal(t, int64(557), f.TotalAmount)
	assert.Equal(t, occurredAt, f.OccurredAt)
}
