package promotion

const (
	CodeWellness10 = "WELLNESS10"
	CodeSpringFeet = "SPRINGFEET"
	CodeCPT50      = "CPT50"
	CodeBundle5    = "BUNDLE5"
)

// Definition is the serializable promotion catalog entry. The behavior lives
// in the rule table keyed by Code, keeping this struct plain data.
type Definition struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	How    string `json:"how"`
}

var Catalog = []Definition{
	{
		Code:   CodeWellness10,
		Title:  "10% off any therapy",
		Detail: "Applies to your selected treatment (products excluded).",
		How:    "Select a treatment, then apply this code in Cart or Checkout.",
	},
	{
		Code:   CodeSpringFeet,
		Title:  "20% off Just Feet combo",
		Detail: "Only for the Just Feet Combo (Soak & Reflex) 60 Min.",
		How:    "Choose the Just Feet combo to unlock this discount.",
	},
	{
		Code:   CodeCPT50,
		Title:  "R50 off - Cape Town CBD",
		Detail: "Valid when you book at the Cape Town CBD branch.",
		How:    "Pick Cape Town CBD in the booking calendar.",
	},
	{
		Code:   CodeBundle5,
		Title:  "5% off products",
		Detail: "When you add 2+ product items to your cart.",
		How:    "Add any two or more items in Products.",
	},
}

// Result reports how a code scored against the current cart. A zero Amount
// with a Reason means the code is recognized but not currently eligible.
type Result struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}
