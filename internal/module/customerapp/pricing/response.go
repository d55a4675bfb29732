package pricing

import (
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
)

type QuoteResponse struct {
	Cart          cart.Cart             `json:"cart"`
	Promo         *promotion.Result     `json:"promo"`
	Reward        *loyalty.RewardResult `json:"reward"`
	AppliedType   string                `json:"applied_type"`
	AppliedAmount int64                 `json:"applied_amount"`
	PayableTotal  int64                 `json:"payable_total"`
}

// PopulateFromSelection fills the response from a computed cart and the
// winning discount. PayableTotal never goes below zero.
func (q *QuoteResponse) PopulateFromSelection(c cart.Cart, sel Selection) {
	q.Cart = c
	q.Promo = sel.Promo
	q.Reward = sel.Reward
	q.AppliedType = sel.Type
	q.AppliedAmount = sel.Amount

	total := c.PreDiscountTotal - sel.Amount
	if total < 0 {
		total = 0
	}
	q.PayableTotal = total
}
