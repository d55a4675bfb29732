package promotion

import (
	"math"
	"strings"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/catalog"
)

const capeTownCBD = "Cape Town CBD"

// rule scores one code against the cart and draft. A zero amount means the
// code did not apply; the reason explains why.
type rule func(c cart.Cart, d *cart.Draft) (int64, string)

var rules = map[string]rule{
	CodeWellness10: func(c cart.Cart, _ *cart.Draft) (int64, string) {
		if c.ServicePrice == 0 {
			return 0, "no priced treatment selected"
		}
		return roundHalfUp(float64(c.ServicePrice) * 0.10), "10% off selected treatment"
	},
	CodeSpringFeet: func(c cart.Cart, _ *cart.Draft) (int64, string) {
		if c.Service != catalog.TreatmentJustFeetCombo {
			return 0, "only valid for the Just Feet combo"
		}
		return roundHalfUp(float64(c.ServicePrice) * 0.20), "20% off Just Feet combo"
	},
	CodeCPT50: func(_ cart.Cart, d *cart.Draft) (int64, string) {
		if d == nil || d.Branch != capeTownCBD {
			return 0, "only valid at the Cape Town CBD branch"
		}
		return 50, "R50 off Cape Town CBD"
	},
	CodeBundle5: func(c cart.Cart, _ *cart.Draft) (int64, string) {
		if c.ProductsQuantity < 2 {
			return 0, "add two or more product items to qualify"
		}
		return roundHalfUp(float64(c.ProductsSubtotal) * 0.05), "5% off products"
	},
}

// Evaluate scores the draft's promotion code. It returns nil when no code is
// present. Unknown codes and recognized-but-ineligible codes both come back
// with a zero amount, distinguished by the reason.
func Evaluate(d *cart.Draft) *Result {
	var raw string
	if d != nil {
		raw = d.PromoCode
	}

	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return nil
	}

	r, ok := rules[code]
	if !ok {
		return &Result{Code: code, Amount: 0, Reason: "code not recognized"}
	}

	c := cart.Compute(d)

	scored, reason := r(c, d)

	amount := scored
	if amount < 0 {
		amount = 0
	}
	if amount > c.PreDiscountTotal {
		amount = c.PreDiscountTotal
	}

	if amount == 0 {
		if scored > 0 {
			// the rule applied but rounding or clamping zeroed it out
			reason = "code valid, but not eligible with the current cart"
		}
		return &Result{Code: code, Amount: 0, Reason: reason}
	}

	return &Result{Code: code, Amount: amount, Reason: reason}
}

// roundHalfUp rounds a non-negative Rand amount half away from zero, which
// for positive values is round-half-up.
func roundHalfUp(v float64) int64 {
	return int64(math.Round(v))
}
