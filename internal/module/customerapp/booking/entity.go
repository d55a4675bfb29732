package booking

import (
	"time"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking is a confirmed appointment. Pricing fields are frozen at checkout
// time and never re-derived from the current catalog or promo rules.
type Booking struct {
	ID                  string              `json:"id"`
	CustomerID          int64               `json:"customer_id"`
	CustomerName        string              `json:"customer_name"`
	CustomerEmail       string              `json:"customer_email"`
	Province            string              `json:"province"`
	Branch              string              `json:"branch"`
	Service             string              `json:"service"`
	ServicePrice        int64               `json:"service_price"`
	Products            []cart.ProductLine  `json:"products"`
	ProductsSubtotal    int64               `json:"products_subtotal"`
	PreDiscountTotal    int64               `json:"pre_discount_total"`
	PromoCode           string              `json:"promo_code"`
	PromoSavings        int64               `json:"promo_savings"`
	LoyaltyRewardID     string              `json:"loyalty_reward_id"`
	LoyaltySavings      int64               `json:"loyalty_savings"`
	TotalAmount         int64               `json:"total_amount"`
	StartAt             time.Time           `json:"start_at"`
	EndAt               time.Time           `json:"end_at"`
	TherapistName       string              `json:"therapist_name"`
	OilFragrance        string              `json:"oil_fragrance"`
	MassageIntensity    string              `json:"massage_intensity"`
	SpecialInstructions string              `json:"special_instructions"`
	Status              string              `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	CancelledAt         *time.Time          `json:"cancelled_at,omitempty"`
}

// Cancelable reports whether the booking may still be cancelled. Only
// confirmed bookings whose start is strictly in the future qualify.
func (b Booking) Cancelable(now time.Time) bool {
	return b.Status == StatusConfirmed && b.StartAt.After(now)
}
