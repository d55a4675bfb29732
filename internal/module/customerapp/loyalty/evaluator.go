package loyalty

import (
	"fmt"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/catalog"
)

// rewardRules holds the eligibility predicates, keyed by reward id, so the
// Reward catalog entries stay plain serializable data.
var rewardRules = map[string]func(c cart.Cart, d *cart.Draft) bool{
	RewardR50Off: func(c cart.Cart, _ *cart.Draft) bool {
		return c.PreDiscountTotal >= 50
	},
	RewardFreeSoak: func(_ cart.Cart, d *cart.Draft) bool {
		return d != nil && d.Service == catalog.TreatmentFootSoak
	},
}

// EvaluateReward scores the draft's selected reward against the account and
// cart. It returns nil when nothing is selected or the id is unknown. The
// point balance is checked before cart eligibility: a reward the customer
// cannot afford reports the shortfall even if the cart would not qualify.
func EvaluateReward(d *cart.Draft, acc Account) *RewardResult {
	var selected string
	if d != nil {
		selected = d.LoyaltyRewardID
	}
	if selected == "" {
		return nil
	}

	reward, ok := RewardByID(selected)
	if !ok {
		return nil
	}

	if acc.Points < reward.PointsCost {
		return &RewardResult{
			ID:     reward.ID,
			Amount: 0,
			Reason: fmt.Sprintf("need %d pts", reward.PointsCost),
		}
	}

	c := cart.Compute(d)
	eligible := true
	if rule, ok := rewardRules[reward.ID]; ok {
		eligible = rule(c, d)
	}

	if reward.FreeServiceName != "" {
		if !eligible {
			return &RewardResult{ID: reward.ID, Amount: 0, Reason: "not eligible with selected treatment"}
		}
		amount := catalog.TreatmentPrice(reward.FreeServiceName)
		if amount > c.PreDiscountTotal {
			amount = c.PreDiscountTotal
		}
		return &RewardResult{ID: reward.ID, Amount: amount, Reason: fmt.Sprintf("Free %s", reward.FreeServiceName)}
	}

	if !eligible {
		return &RewardResult{ID: reward.ID, Amount: 0, Reason: "not eligible with current cart"}
	}

	amount := reward.AmountOff
	if amount > c.PreDiscountTotal {
		amount = c.PreDiscountTotal
	}
	return &RewardResult{ID: reward.ID, Amount: amount, Reason: reward.Label}
}
