package cart

import (
	"encoding/json"
	"time"
)

// RawDraft is the wire shape of a draft. Persisted drafts have gone through
// several client revisions, so a handful of fields arrive under two names
// (e.g. "branch" and "Branch", "startUtc" and "StartUtc") and the service
// historically came as a one-element "services" array. Canonical resolves
// the aliases so the engine only deals with Draft.
type RawDraft struct {
	Province            string             `json:"province"`
	Branch              string             `json:"branch"`
	Service             string             `json:"service"`
	Services            []string           `json:"services"`
	Products            []ProductSelection `json:"products"`
	StartUTC            string             `json:"startUtc"`
	EndUTC              string             `json:"endUtc"`
	TherapistName       string             `json:"therapistName"`
	OilFragrance        string             `json:"oilFragrance"`
	MassageIntensity    string             `json:"massageIntensity"`
	SpecialInstructions string             `json:"specialInstructions"`
	PromoCode           string             `json:"promoCode"`
	LoyaltyRewardID     string             `json:"loyaltyRewardId"`
}

var rawDraftAliases = map[string][]string{
	"province": {"Province"},
	"branch":   {"Branch"},
	"startUtc": {"StartUtc", "start_utc"},
	"endUtc":   {"EndUtc", "end_utc"},
}

func (r *RawDraft) UnmarshalJSON(data []byte) error {
	type plain RawDraft
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for canonical, aliases := range rawDraftAliases {
		if _, ok := fields[canonical]; ok {
			continue
		}
		for _, alias := range aliases {
			raw, ok := fields[alias]
			if !ok {
				continue
			}
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				continue
			}
			switch canonical {
			case "province":
				p.Province = value
			case "branch":
				p.Branch = value
			case "startUtc":
				p.StartUTC = value
			case "endUtc":
				p.EndUTC = value
			}
			break
		}
	}

	*r = RawDraft(p)
	return nil
}

// Canonical maps the wire draft onto the canonical typed record. Timestamps
// that fail to parse are left zero; the engine treats them as absent.
func (r RawDraft) Canonical() *Draft {
	service := r.Service
	if service == "" && len(r.Services) > 0 {
		service = r.Services[0]
	}

	d := &Draft{
		Province:            r.Province,
		Branch:              r.Branch,
		Service:             service,
		Products:            r.Products,
		TherapistName:       r.TherapistName,
		OilFragrance:        r.OilFragrance,
		MassageIntensity:    r.MassageIntensity,
		SpecialInstructions: r.SpecialInstructions,
		PromoCode:           r.PromoCode,
		LoyaltyRewardID:     r.LoyaltyRewardID,
	}

	if t, err := time.Parse(time.RFC3339, r.StartUTC); err == nil {
		d.StartAt = t
	}
	if t, err := time.Parse(time.RFC3339, r.EndUTC); err == nil {
		d.EndAt = t
	}

	return d
}
