package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFallsBackToDefaultService(t *testing.T) {
	c := Compute(&Draft{})

	assert.Equal(t, "60 Min Therapy", c.Service)
	assert.Equal(t, int64(300), c.ServicePrice)
	assert.Equal(t, int64(300), c.PreDiscountTotal)
}

func TestComputeNilDraft(t *testing.T) {
	c := Compute(nil)

	assert.Equal(t, "60 Min Therapy", c.Service)
	assert.Equal(t, int64(300), c.PreDiscountTotal)
}

func TestComputeSumsProductLines(t *testing.T) {
	d := &Draft{
		Service: "Just Feet Combo (Soak & Reflex) 60 Min",
		Products: []ProductSelection{
			{Name: "Green Tea", Quantity: 2},
			{Name: "Moringa", Quantity: 1},
		},
	}

	c := Compute(d)

	require.Len(t, c.ProductLines, 2)
	assert.Equal(t, int64(320), c.ServicePrice)
	assert.Equal(t, int64(2*79+129), c.ProductsSubtotal)
	assert.Equal(t, int64(3), c.ProductsQuantity)
	assert.Equal(t, int64(320+2*79+129), c.PreDiscountTotal)
	assert.Equal(t, int64(158), c.ProductLines[0].LineTotal)
}

func TestComputeSkipsZeroQuantityLines(t *testing.T) {
	d := &Draft{
		Service: "60 Min Therapy",
		Products: []ProductSelection{
			{Name: "Green Tea", Quantity: 0},
			{Name: "Calcium Powder", Quantity: -1},
			{Name: "Moringa", Quantity: 1},
		},
	}

	c := Compute(d)

	require.Len(t, c.ProductLines, 1)
	assert.Equal(t, "Moringa", c.ProductLines[0].Name)
	assert.Equal(t, int64(129), c.ProductsSubtotal)
}

func TestComputeUnknownProductPricedAtZero(t *testing.T) {
	d := &Draft{
		Service: "60 Min Therapy",
		Products: []ProductSelection{
			{Name: "Mystery Tonic", Quantity: 3},
		},
	}

	c := Compute(d)

	require.Len(t, c.ProductLines, 1)
	assert.Equal(t, int64(0), c.ProductLines[0].Price)
	assert.Equal(t, int64(0), c.ProductsSubtotal)
	assert.Equal(t, int64(3), c.ProductsQuantity)
	assert.Equal(t, int64(300), c.PreDiscountTotal)
}

func TestComputeUnknownServicePricedAtZero(t *testing.T) {
	c := Compute(&Draft{Service: "Hot Stone Special"})

	assert.Equal(t, "Hot Stone Special", c.Service)
	assert.Equal(t, int64(0), c.ServicePrice)
	assert.Equal(t, int64(0), c.PreDiscountTotal)
}
