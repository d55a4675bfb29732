package booking

import (
	"time"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

type BookingResponse struct {
	ID                  string             `json:"id"`
	Province            string             `json:"province"`
	Branch              string             `json:"branch"`
	Service             string             `json:"service"`
	ServicePrice        int64              `json:"service_price"`
	Products            []cart.ProductLine `json:"products"`
	ProductsSubtotal    int64              `json:"products_subtotal"`
	PreDiscountTotal    int64              `json:"pre_discount_total"`
	PromoCode           string             `json:"promo_code,omitempty"`
	PromoSavings        int64              `json:"promo_savings"`
	LoyaltyRewardID     string             `json:"loyalty_reward_id,omitempty"`
	LoyaltySavings      int64              `json:"loyalty_savings"`
	TotalAmount         int64              `json:"total_amount"`
	StartAt             time.Time          `json:"start_at"`
	EndAt               time.Time          `json:"end_at"`
	TherapistName       string             `json:"therapist_name,omitempty"`
	OilFragrance        string             `json:"oil_fragrance,omitempty"`
	MassageIntensity    string             `json:"massage_intensity,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	Status              string             `json:"status"`
	Cancelable          bool               `json:"cancelable"`
	CreatedAt           time.Time          `json:"created_at"`
	CancelledAt         *time.Time         `json:"cancelled_at,omitempty"`
}

// PopulateFromEntity fills the response from a stored booking.
func (resp *BookingResponse) PopulateFromEntity(b Booking, now time.Time) {
	resp.ID = b.ID
	resp.Province = b.Province
	resp.Branch = b.Branch
	resp.Service = b.Service
	resp.ServicePrice = b.ServicePrice
	resp.Products = b.Products
	resp.ProductsSubtotal = b.ProductsSubtotal
	resp.PreDiscountTotal = b.PreDiscountTotal
	resp.PromoCode = b.PromoCode
	resp.PromoSavings = b.PromoSavings
	resp.LoyaltyRewardID = b.LoyaltyRewardID
	resp.LoyaltySavings = b.LoyaltySavings
	resp.TotalAmount = b.TotalAmount
	resp.StartAt = b.StartAt
	resp.EndAt = b.EndAt
	resp.TherapistName = b.TherapistName
	resp.OilFragrance = b.OilFragrance
	resp.MassageIntensity = b.MassageIntensity
	resp.SpecialInstructions = b.SpecialInstructions
	resp.Status = b.Status
	resp.Cancelable = b.Cancelable(now)
	resp.CreatedAt = b.CreatedAt
	resp.CancelledAt = b.CancelledAt
}

type CheckoutResponse struct {
	BookingResponse
	ClearRewardSelection bool `json:"clear_reward_selection"`
}

type GetManyBookingResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
}

type GetSlotsResponse struct {
	Branch string `json:"branch"`
	Date   string `json:"date"`
	Slots  []Slot `json:"slots"`
}
