package cart

import "time"

// Draft is the canonical in-progress selection. The engine only ever sees
// this shape; wire-level aliases are resolved by RawDraft.
type Draft struct {
	Province            string
	Branch              string
	Service             string
	Products            []ProductSelection
	StartAt             time.Time
	EndAt               time.Time
	TherapistName       string
	OilFragrance        string
	MassageIntensity    string
	SpecialInstructions string
	PromoCode           string
	LoyaltyRewardID     string
}

type ProductSelection struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// Cart is the derived pricing snapshot of a draft. It is never persisted.
type Cart struct {
	Service          string        `json:"service"`
	ServicePrice     int64         `json:"service_price"`
	ProductLines     []ProductLine `json:"product_lines"`
	ProductsSubtotal int64         `json:"products_subtotal"`
	ProductsQuantity int64         `json:"products_quantity"`
	PreDiscountTotal int64         `json:"pre_discount_total"`
}

type ProductLine struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
	LineTotal int64  `json:"line_total"`
}
