package loyalty

import (
	"strconv"
	"time"

	"github.com/theplant/luhn"
)

const (
	StampTarget      = 6
	StampBonusPoints = 100
	EarnPerRands     = 10
)

const (
	TierMember = "Member"
	TierSilver = "Silver"
	TierGold   = "Gold"
)

type Tier struct {
	Name       string  `json:"name"`
	Threshold  int64   `json:"threshold"`
	Multiplier float64 `json:"multiplier"`
}

// Tiers is ordered by ascending threshold; TierFor relies on that order.
var Tiers = []Tier{
	{Name: TierMember, Threshold: 0, Multiplier: 1.0},
	{Name: TierSilver, Threshold: 800, Multiplier: 1.1},
	{Name: TierGold, Threshold: 2000, Multiplier: 1.25},
}

// TierFor derives the tier from lifetime earned points: the highest
// threshold not exceeding earnedTotal wins.
func TierFor(earnedTotal int64) Tier {
	tier := Tiers[0]
	for _, t := range Tiers {
		if earnedTotal >= t.Threshold {
			tier = t
		}
	}
	return tier
}

const (
	RewardR50Off   = "R50OFF"
	RewardFreeSoak = "FREE_SOAK"
)

// Reward is the serializable reward catalog entry. Exactly one of AmountOff
// and FreeServiceName is set. Eligibility predicates live in the rule table
// in evaluator.go, keyed by ID.
type Reward struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	PointsCost      int64  `json:"points_cost"`
	AmountOff       int64  `json:"amount_off,omitempty"`
	FreeServiceName string `json:"free_service_name,omitempty"`
}

var Rewards = []Reward{
	{ID: RewardR50Off, Label: "R50 off your order", PointsCost: 100, AmountOff: 50},
	{ID: RewardFreeSoak, Label: "Free Herbal Foot Soak (30 Min)", PointsCost: 200, FreeServiceName: "Herbal Foot Soak (30 Min)"},
}

func RewardByID(id string) (Reward, bool) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// RewardResult reports how a selected reward scored. Zero Amount with a
// Reason distinguishes "can't afford" and "cart doesn't qualify" from an
// absent selection (nil).
type RewardResult struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

const (
	EventTypeStamp      = "stamp"
	EventTypeStampBonus = "stamp_bonus"
	EventTypeRedeem     = "redeem"
	EventTypeEarn       = "earn"
	EventTypeTier       = "tier"
)

// Event is one append-only ledger entry on an account's history.
type Event struct {
	ID       string    `json:"id"`
	Seq      int64     `json:"seq"`
	At       time.Time `json:"at"`
	Type     string    `json:"type"`
	Stamps   int64     `json:"stamps,omitempty"`
	Points   int64     `json:"points"`
	Amount   int64     `json:"amount,omitempty"`
	RewardID string    `json:"reward_id,omitempty"`
	Label    string    `json:"label,omitempty"`
	Tier     string    `json:"tier,omitempty"`
}

// Account is the per-customer loyalty record. Tier is cached but always
// derivable from EarnedTotal.
type Account struct {
	CustomerID  int64     `json:"customer_id"`
	CardNumber  string    `json:"card_number"`
	Points      int64     `json:"points"`
	EarnedTotal int64     `json:"earned_total"`
	Stamps      int64     `json:"stamps"`
	Tier        string    `json:"tier"`
	History     []Event   `json:"history,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidCardNumber checks a loyalty card number's Luhn check digit.
func ValidCardNumber(cardNumber string) bool {
	n, err := strconv.Atoi(cardNumber)
	if err != nil || n <= 0 {
		return false
	}
	return luhn.Valid(n)
}
