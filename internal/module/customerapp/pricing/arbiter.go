package pricing

import (
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
)

const (
	TypeNone   = "NONE"
	TypePromo  = "PROMO"
	TypeReward = "REWARD"
)

// Selection is the single discount applied to a cart. At most one of
// Promo or Reward carries a non-zero amount; the other is kept for
// display so the customer can see why it lost.
type Selection struct {
	Type   string
	Amount int64
	Promo  *promotion.Result
	Reward *loyalty.RewardResult
}

// Choose picks the larger of the promotion and reward discounts. A tie
// selects the promotion. Discounts never stack.
func Choose(p *promotion.Result, r *loyalty.RewardResult) Selection {
	sel := Selection{Type: TypeNone, Promo: p, Reward: r}

	var promoAmount, rewardAmount int64
	if p != nil {
		promoAmount = p.Amount
	}
	if r != nil {
		rewardAmount = r.Amount
	}

	if promoAmount <= 0 && rewardAmount <= 0 {
		return sel
	}

	if promoAmount >= rewardAmount {
		sel.Type = TypePromo
		sel.Amount = promoAmount
		return sel
	}

	sel.Type = TypeReward
	sel.Amount = rewardAmount
	return sel
}
