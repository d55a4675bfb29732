package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

func TestEvaluateRewardNoSelection(t *testing.T) {
	assert.Nil(t, EvaluateReward(&cart.Draft{Service: "60 Min Therapy"}, Account{Points: 500}))
	assert.Nil(t, EvaluateReward(nil, Account{Points: 500}))
}

func TestEvaluateRewardUnknownID(t *testing.T) {
	d := &cart.Draft{Service: "60 Min Therapy", LoyaltyRewardID: "MYSTERY"}
	assert.Nil(t, EvaluateReward(d, Account{Points: 500}))
}

func TestEvaluateRewardPointsGateBeforeEligibility(t *testing.T) {
	// cart would not qualify for the free soak either, but the point
	// shortfall is reported first
	d := &cart.Draft{Service: "60 Min Therapy", LoyaltyRewardID: RewardFreeSoak}

	r := EvaluateReward(d, Account{Points: 150})

	require.NotNil(t, r)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "need 200 pts", r.Reason)
}

func TestEvaluateRewardR50Off(t *testing.T) {
	d := &cart.Draft{Service: "60 Min Therapy", LoyaltyRewardID: RewardR50Off}

	r := EvaluateReward(d, Account{Points: 100})

	require.NotNil(t, r)
	assert.Equal(t, int64(50), r.Amount)
}

func TestEvaluateRewardR50OffCartTooSmall(t *testing.T) {
	d := &cart.Draft{Service: "Hot Stone Special", LoyaltyRewardID: RewardR50Off}

	r := EvaluateReward(d, Account{Points: 100})

	require.NotNil(t, r)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "not eligible with current cart", r.Reason)
}

func TestEvaluateRewardFreeSoak(t *testing.T) {
	d := &cart.Draft{Service: "Herbal Foot Soak (30 Min)", LoyaltyRewardID: RewardFreeSoak}

	r := EvaluateReward(d, Account{Points: 200})

	require.NotNil(t, r)
	assert.Equal(t, int64(140), r.Amount)
	assert.Equal(t, "Free Herbal Foot Soak (30 Min)", r.Reason)
}

func TestEvaluateRewardFreeSoakWrongService(t *testing.T) {
	d := &cart.Draft{Service: "60 Min Therapy", LoyaltyRewardID: RewardFreeSoak}

	r := EvaluateReward(d, Account{Points: 200})

	require.NotNil(t, r)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "not eligible with selected treatment", r.Reason)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierMember, TierFor(0).Name)
	assert.Equal(t, TierMember, TierFor(799).Name)
	assert.Equal(t, TierSilver, TierFor(800).Name)
	assert.Equal(t, TierSilver, TierFor(1999).Name)
	assert.Equal(t, TierGold, TierFor(2000).Name)
	assert.Equal(t, TierGold, TierFor(1_000_000).Name)
}

func TestValidCardNumber(t *testing.T) {
	assert.True(t, ValidCardNumber("79927398713"))
	assert.False(t, ValidCardNumber("79927398710"))
	assert.False(t, ValidCardNumber("not-a-number"))
	assert.False(t, ValidCardNumber(""))
}
