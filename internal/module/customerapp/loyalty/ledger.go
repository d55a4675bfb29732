package loyalty

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AccrualResult is the outcome of one checkout's loyalty accounting.
// Appended lists the history events added by this accrual, in order.
// ClearRewardSelection tells the caller to drop the draft's reward selection
// so a consumed reward does not persist into the next cart.
type AccrualResult struct {
	Account              Account
	Appended             []Event
	ClearRewardSelection bool
}

// Accrue applies one completed checkout to the account. redeemedRewardID is
// non-empty only when the discount arbiter chose a reward for this purchase.
//
// The order is fixed: the earning tier is the one held before this
// purchase's own accrual, the stamp events precede the redeem and earn
// events, and the tier event reflects the post-accrual total. The function
// never fails; malformed numeric input is clamped to zero.
func Accrue(chargedTotal int64, redeemedRewardID string, acc Account, now time.Time) AccrualResult {
	if chargedTotal < 0 {
		chargedTotal = 0
	}

	currentTier := TierFor(acc.EarnedTotal)
	previousTierName := acc.Tier
	if previousTierName == "" {
		previousTierName = currentTier.Name
	}

	// Events in one accrual share the same timestamp, so Seq carries the
	// append order through storage and back.
	var appended []Event
	appendEvent := func(e Event) {
		e.ID = uuid.NewString()
		e.Seq = int64(len(appended) + 1)
		e.At = now
		appended = append(appended, e)
	}

	// one stamp per completed booking, any service counts
	stamps := acc.Stamps + 1
	var bonus int64
	appendEvent(Event{Type: EventTypeStamp, Stamps: stamps})
	if stamps >= StampTarget {
		stamps = 0
		bonus = StampBonusPoints
		appendEvent(Event{Type: EventTypeStampBonus, Points: bonus})
	}

	points := acc.Points
	clearReward := false
	if redeemedRewardID != "" {
		if reward, ok := RewardByID(redeemedRewardID); ok {
			points -= reward.PointsCost
			if points < 0 {
				points = 0
			}
			appendEvent(Event{
				Type:     EventTypeRedeem,
				RewardID: reward.ID,
				Label:    reward.Label,
				Points:   -reward.PointsCost,
			})
		}
		clearReward = true
	}

	earned := int64(math.Floor(math.Floor(float64(chargedTotal)/EarnPerRands) * currentTier.Multiplier))
	points += earned + bonus
	earnedTotal := acc.EarnedTotal + earned + bonus
	appendEvent(Event{Type: EventTypeEarn, Amount: chargedTotal, Points: earned})

	newTier := TierFor(earnedTotal)
	if newTier.Name != previousTierName {
		appendEvent(Event{Type: EventTypeTier, Tier: newTier.Name})
	}

	next := acc
	next.Points = points
	next.EarnedTotal = earnedTotal
	next.Stamps = stamps
	next.Tier = newTier.Name
	next.History = append(next.History, appended...)
	next.UpdatedAt = now

	return AccrualResult{
		Account:              next,
		Appended:             appended,
		ClearRewardSelection: clearReward,
	}
}
