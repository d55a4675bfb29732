package report

// BranchSummary aggregates bookings for one branch over a reporting window.
// Amounts are whole Rands.
type BranchSummary struct {
	Branch           string `json:"branch"`
	Bookings         int64  `json:"bookings"`
	Cancelled        int64  `json:"cancelled"`
	GrossRevenue     int64  `json:"gross_revenue"`
	PromoSavings     int64  `json:"promo_savings"`
	LoyaltySavings   int64  `json:"loyalty_savings"`
	ProductsSubtotal int64  `json:"products_subtotal"`
}
