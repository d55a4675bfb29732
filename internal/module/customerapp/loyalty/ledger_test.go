package loyalty

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accrueNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestAccrueEarnsAtMemberRate(t *testing.T) {
	acc := Account{Tier: TierMember}

	res := Accrue(300, "", acc, accrueNow)

	assert.Equal(t, int64(30), res.Account.Points)
	assert.Equal(t, int64(30), res.Account.EarnedTotal)
	assert.Equal(t, int64(1), res.Account.Stamps)
	assert.False(t, res.ClearRewardSelection)
}

func TestAccrueEarnsAtPreAccrualTier(t *testing.T) {
	// already Gold before this purchase: floor(floor(300/10) * 1.25) = 37
	acc := Account{Points: 0, EarnedTotal: 2000, Tier: TierGold}

	res := Accrue(300, "", acc, accrueNow)

	assert.Equal(t, int64(37), res.Account.Points)
	assert.Equal(t, int64(2037), res.Account.EarnedTotal)
}

func TestAccrueStampRollover(t *testing.T) {
	acc := Account{Stamps: 5, Tier: TierMember}

	res := Accrue(300, "", acc, accrueNow)

	assert.Equal(t, int64(0), res.Account.Stamps)
	assert.Equal(t, int64(130), res.Account.Points)
	assert.Equal(t, int64(130), res.Account.EarnedTotal)

	require.Len(t, res.Appended, 3)
	assert.Equal(t, EventTypeStamp, res.Appended[0].Type)
	assert.Equal(t, int64(6), res.Appended[0].Stamps)
	assert.Equal(t, EventTypeStampBonus, res.Appended[1].Type)
	assert.Equal(t, int64(100), res.Appended[1].Points)
	assert.Equal(t, EventTypeEarn, res.Appended[2].Type)
}

func TestAccrueRedeemDebitsPoints(t *testing.T) {
	acc := Account{Points: 120, EarnedTotal: 500, Stamps: 1, Tier: TierMember}

	res := Accrue(250, RewardR50Off, acc, accrueNow)

	// 120 - 100 redeemed + 25 earned
	assert.Equal(t, int64(45), res.Account.Points)
	assert.True(t, res.ClearRewardSelection)

	require.Len(t, res.Appended, 3)
	assert.Equal(t, EventTypeRedeem, res.Appended[1].Type)
	assert.Equal(t, int64(-100), res.Appended[1].Points)
	assert.Equal(t, RewardR50Off, res.Appended[1].RewardID)
}

func TestAccrueRedeemDebitClampsAtZero(t *testing.T) {
	acc := Account{Points: 60, Tier: TierMember}

	res := Accrue(0, RewardR50Off, acc, accrueNow)

	assert.Equal(t, int64(0), res.Account.Points)
}

func TestAccrueUnknownRewardStillClearsSelection(t *testing.T) {
	acc := Account{Points: 100, Tier: TierMember}

	res := Accrue(100, "MYSTERY", acc, accrueNow)

	assert.True(t, res.ClearRewardSelection)
	assert.Equal(t, int64(110), res.Account.Points)
}

func TestAccrueEarnedTotalMonotone(t *testing.T) {
	acc := Account{Points: 200, EarnedTotal: 900, Tier: TierSilver}

	res := Accrue(0, RewardFreeSoak, acc, accrueNow)

	// redemption debits the spendable balance, never the lifetime total
	assert.Equal(t, int64(900), res.Account.EarnedTotal)
	assert.Equal(t, int64(0), res.Account.Points)
}

func TestAccrueTierPromotionEvent(t *testing.T) {
	acc := Account{Points: 0, EarnedTotal: 780, Tier: TierMember}

	res := Accrue(300, "", acc, accrueNow)

	assert.Equal(t, TierSilver, res.Account.Tier)

	last := res.Appended[len(res.Appended)-1]
	assert.Equal(t, EventTypeTier, last.Type)
	assert.Equal(t, TierSilver, last.Tier)
}

func TestAccrueNegativeTotalClamped(t *testing.T) {
	acc := Account{Tier: TierMember}

	res := Accrue(-500, "", acc, accrueNow)

	assert.Equal(t, int64(0), res.Account.Points)
	assert.Equal(t, int64(0), res.Account.EarnedTotal)
	assert.Equal(t, int64(1), res.Account.Stamps)
}

func TestAccrueEventSeqSurvivesStorageOrdering(t *testing.T) {
	// All events of one accrual share the same timestamp, so the repository
	// orders by (at, seq). Sorting by that key must reproduce append order.
	acc := Account{Stamps: 5, Points: 120, EarnedTotal: 500, Tier: TierMember}

	res := Accrue(300, RewardR50Off, acc, accrueNow)
	require.Len(t, res.Appended, 4)

	types := make([]string, 0, len(res.Appended))
	for i, e := range res.Appended {
		assert.Equal(t, int64(i+1), e.Seq)
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{EventTypeStamp, EventTypeStampBonus, EventTypeRedeem, EventTypeEarn}, types)

	stored := append([]Event(nil), res.Appended...)
	sort.Slice(stored, func(i, j int) bool { return stored[j].ID < stored[i].ID })
	sort.SliceStable(stored, func(i, j int) bool {
		if !stored[i].At.Equal(stored[j].At) {
			return stored[i].At.Before(stored[j].At)
		}
		return stored[i].Seq < stored[j].Seq
	})

	assert.Equal(t, res.Appended, stored)
}

func TestAccrueEventIdentity(t *testing.T) {
	res := Accrue(300, "", Account{Tier: TierMember}, accrueNow)

	seen := map[string]struct{}{}
	for _, e := range res.Appended {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, accrueNow, e.At)
		_, dup := seen[e.ID]
		assert.False(t, dup)
		seen[e.ID] = struct{}{}
	}
}
