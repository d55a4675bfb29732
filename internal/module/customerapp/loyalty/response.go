package loyalty

import "time"

type GetAccountResponse struct {
	CustomerID  int64           `json:"customer_id"`
	CardNumber  string          `json:"card_number,omitempty"`
	Points      int64           `json:"points"`
	EarnedTotal int64           `json:"earned_total"`
	Stamps      int64           `json:"stamps"`
	StampTarget int64           `json:"stamp_target"`
	Tier        string          `json:"tier"`
	Multiplier  float64         `json:"multiplier"`
	Rewards     []Reward        `json:"rewards"`
	History     []EventResponse `json:"history"`
}

type EventResponse struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Type     string    `json:"type"`
	Stamps   int64     `json:"stamps,omitempty"`
	Points   int64     `json:"points"`
	Amount   int64     `json:"amount,omitempty"`
	RewardID string    `json:"reward_id,omitempty"`
	Label    string    `json:"label,omitempty"`
	Tier     string    `json:"tier,omitempty"`
}

func (r *GetAccountResponse) PopulateFromEntity(acc Account) {
	r.CustomerID = acc.CustomerID
	r.CardNumber = acc.CardNumber
	r.Points = acc.Points
	r.EarnedTotal = acc.EarnedTotal
	r.Stamps = acc.Stamps
	r.StampTarget = StampTarget
	r.Tier = acc.Tier
	r.Multiplier = TierFor(acc.EarnedTotal).Multiplier
	r.Rewards = Rewards

	history := make([]EventResponse, len(acc.History))
	for k, e := range acc.History {
		history[k] = EventResponse{
			ID:       e.ID,
			At:       e.At,
			Type:     e.Type,
			Stamps:   e.Stamps,
			Points:   e.Points,
			Amount:   e.Amount,
			RewardID: e.RewardID,
			Label:    e.Label,
			Tier:     e.Tier,
		}
	}
	r.History = history
}
