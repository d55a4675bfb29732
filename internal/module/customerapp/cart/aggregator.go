package cart

import (
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/catalog"
)

// Compute derives the priced cart from a draft. It is a pure function and is
// safe to call with a nil or partially filled draft: unknown names price at
// zero and missing selections fall back to the default treatment.
func Compute(d *Draft) Cart {
	service := catalog.FallbackTreatment
	if d != nil && d.Service != "" {
		service = d.Service
	}
	servicePrice := catalog.TreatmentPrice(service)

	var (
		lines    []ProductLine
		subtotal int64
		quantity int64
	)
	if d != nil {
		for _, p := range d.Products {
			if p.Quantity <= 0 {
				continue
			}
			price := catalog.ProductPrice(p.Name)
			line := ProductLine{
				Name:      p.Name,
				Quantity:  p.Quantity,
				Price:     price,
				LineTotal: price * p.Quantity,
			}
			lines = append(lines, line)
			subtotal += line.LineTotal
			quantity += p.Quantity
		}
	}

	return Cart{
		Service:          service,
		ServicePrice:     servicePrice,
		ProductLines:     lines,
		ProductsSubtotal: subtotal,
		ProductsQuantity: quantity,
		PreDiscountTotal: servicePrice + subtotal,
	}
}
