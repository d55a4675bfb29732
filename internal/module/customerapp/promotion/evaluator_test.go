package promotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
)

func TestEvaluateNoCode(t *testing.T) {
	assert.Nil(t, Evaluate(&cart.Draft{Service: "60 Min Therapy"}))
	assert.Nil(t, Evaluate(&cart.Draft{PromoCode: "   "}))
	assert.Nil(t, Evaluate(nil))
}

func TestEvaluateUnknownCode(t *testing.T) {
	r := Evaluate(&cart.Draft{Service: "60 Min Therapy", PromoCode: "NOPE123"})

	require.NotNil(t, r)
	assert.Equal(t, "NOPE123", r.Code)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "code not recognized", r.Reason)
}

func TestEvaluateNormalizesCode(t *testing.T) {
	r := Evaluate(&cart.Draft{Service: "60 Min Therapy", PromoCode: "  wellness10 "})

	require.NotNil(t, r)
	assert.Equal(t, CodeWellness10, r.Code)
	assert.Equal(t, int64(30), r.Amount)
}

func TestEvaluateWellness10(t *testing.T) {
	r := Evaluate(&cart.Draft{Service: "60 Min Therapy", PromoCode: CodeWellness10})

	require.NotNil(t, r)
	assert.Equal(t, int64(30), r.Amount)
}

func TestEvaluateWellness10UnpricedTreatment(t *testing.T) {
	r := Evaluate(&cart.Draft{Service: "Hot Stone Special", PromoCode: CodeWellness10})

	require.NotNil(t, r)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "no priced treatment selected", r.Reason)
}

func TestEvaluateSpringFeet(t *testing.T) {
	r := Evaluate(&cart.Draft{Service: "Just Feet Combo (Soak & Reflex) 60 Min", PromoCode: CodeSpringFeet})

	require.NotNil(t, r)
	assert.Equal(t, int64(64), r.Amount)
}

func TestEvaluateSpringFeetWrongService(t *testing.T) {
	r := Evaluate(&cart.Draft{Service: "60 Min Therapy", PromoCode: CodeSpringFeet})

	require.NotNil(t, r)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "only valid for the Just Feet combo", r.Reason)
}

func TestEvaluateCPT50BranchGate(t *testing.T) {
	eligible := Evaluate(&cart.Draft{Service: "60 Min Therapy", Branch: "Cape Town CBD", PromoCode: CodeCPT50})
	require.NotNil(t, eligible)
	assert.Equal(t, int64(50), eligible.Amount)

	other := Evaluate(&cart.Draft{Service: "60 Min Therapy", Branch: "Durban North", PromoCode: CodeCPT50})
	require.NotNil(t, other)
	assert.Equal(t, int64(0), other.Amount)
	assert.Equal(t, "only valid at the Cape Town CBD branch", other.Reason)
}

func TestEvaluateBundle5QuantityGate(t *testing.T) {
	single := Evaluate(&cart.Draft{
		Service:   "60 Min Therapy",
		Products:  []cart.ProductSelection{{Name: "Green Tea", Quantity: 1}},
		PromoCode: CodeBundle5,
	})
	require.NotNil(t, single)
	assert.Equal(t, int64(0), single.Amount)
	assert.Equal(t, "add two or more product items to qualify", single.Reason)

	// subtotal 79+79 = 158, 5% = 7.9 rounds to 8
	pair := Evaluate(&cart.Draft{
		Service:   "60 Min Therapy",
		Products:  []cart.ProductSelection{{Name: "Green Tea", Quantity: 2}},
		PromoCode: CodeBundle5,
	})
	require.NotNil(t, pair)
	assert.Equal(t, int64(8), pair.Amount)
}

func TestEvaluateClampsToPreDiscountTotal(t *testing.T) {
	// an unpriced service totals zero, so the flat R50 clamps to zero
	r := Evaluate(&cart.Draft{Service: "Hot Stone Special", Branch: "Cape Town CBD", PromoCode: CodeCPT50})

	require.NotNil(t, r)
	assert.Equal(t, int64(0), r.Amount)
	assert.Equal(t, "code valid, but not eligible with the current cart", r.Reason)
}
