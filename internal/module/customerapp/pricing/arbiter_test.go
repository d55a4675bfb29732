package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
)

func TestChooseNeither(t *testing.T) {
	sel := Choose(nil, nil)

	assert.Equal(t, TypeNone, sel.Type)
	assert.Equal(t, int64(0), sel.Amount)
}

func TestChooseBothZero(t *testing.T) {
	p := &promotion.Result{Code: "CPT50", Amount: 0, Reason: "only valid at the Cape Town CBD branch"}
	r := &loyalty.RewardResult{ID: "R50OFF", Amount: 0, Reason: "need 100 pts"}

	sel := Choose(p, r)

	assert.Equal(t, TypeNone, sel.Type)
	assert.Equal(t, int64(0), sel.Amount)
	assert.Equal(t, p, sel.Promo)
	assert.Equal(t, r, sel.Reward)
}

func TestChoosePromoWins(t *testing.T) {
	p := &promotion.Result{Code: "SPRINGFEET", Amount: 64}
	r := &loyalty.RewardResult{ID: "R50OFF", Amount: 50}

	sel := Choose(p, r)

	assert.Equal(t, TypePromo, sel.Type)
	assert.Equal(t, int64(64), sel.Amount)
}

func TestChooseRewardWins(t *testing.T) {
	p := &promotion.Result{Code: "WELLNESS10", Amount: 30}
	r := &loyalty.RewardResult{ID: "R50OFF", Amount: 50}

	sel := Choose(p, r)

	assert.Equal(t, TypeReward, sel.Type)
	assert.Equal(t, int64(50), sel.Amount)
	// the losing side is still carried for display
	assert.Equal(t, p, sel.Promo)
}

func TestChooseTieGoesToPromo(t *testing.T) {
	p := &promotion.Result{Code: "CPT50", Amount: 50}
	r := &loyalty.RewardResult{ID: "R50OFF", Amount: 50}

	sel := Choose(p, r)

	assert.Equal(t, TypePromo, sel.Type)
	assert.Equal(t, int64(50), sel.Amount)
}

func TestChooseOnlyPromo(t *testing.T) {
	p := &promotion.Result{Code: "WELLNESS10", Amount: 30}

	sel := Choose(p, nil)

	assert.Equal(t, TypePromo, sel.Type)
	assert.Equal(t, int64(30), sel.Amount)
	assert.Nil(t, sel.Reward)
}
