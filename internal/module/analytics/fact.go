package analytics

import (
	"time"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/booking"
)

const (
	EventTypeConfirmed = "confirmed"
	EventTypeCancelled = "cancelled"
)

// BookingFact is the flattened analytics row derived from one booking
// lifecycle event. Amounts are whole Rands.
type BookingFact struct {
	BookingID        string    `json:"booking_id"`
	EventType        string    `json:"event_type"`
	CustomerID       int64     `json:"customer_id"`
	Province         string    `json:"province"`
	Branch           string    `json:"branch"`
	Service          string    `json:"service"`
	ServicePrice     int64     `json:"service_price"`
	ProductsSubtotal int64     `json:"products_subtotal"`
	ProductsQuantity int64     `json:"products_quantity"`
	PreDiscountTotal int64     `json:"pre_discount_total"`
	PromoCode        string    `json:"promo_code"`
	PromoSavings     int64     `json:"promo_savings"`
	LoyaltyRewardID  string    `json:"loyalty_reward_id"`
	LoyaltySavings   int64     `json:"loyalty_savings"`
	TotalAmount      int64     `json:"total_amount"`
	StartAt          time.Time `json:"start_at"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// FactFromBooking flattens a booking event payload into one analytics row.
func FactFromBooking(eventType string, b booking.Booking, occurredAt time.Time) BookingFact {
	var quantity int64
	for _, line := range b.Products {
		quantity += line.Quantity
	}

	return BookingFact{
		BookingID:        b.ID,
		EventType:        eventType,
		CustomerID:       b.CustomerID,
		Province:         b.Province,
		Branch:           b.Branch,
		Service:          b.Service,
		ServicePrice:     b.ServicePrice,
		ProductsSubtotal: b.ProductsSubtotal,
		ProductsQuantity: quantity,
		PreDiscountTotal: b.PreDiscountTotal,
		PromoCode:        b.PromoCode,
		PromoSavings:     b.PromoSavings,
		LoyaltyRewardID:  b.LoyaltyRewardID,
		LoyaltySavings:   b.LoyaltySavings,
		TotalAmount:      b.TotalAmount,
		StartAt:          b.StartAt,
		OccurredAt:       occurredAt,
	}
}
