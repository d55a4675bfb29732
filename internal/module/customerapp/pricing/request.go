package pricing

import (
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

// QuoteRequest carries a draft selection to be priced. Drafts may be
// partial, so nothing here is required.
type QuoteRequest struct {
	cart.RawDraft
}
