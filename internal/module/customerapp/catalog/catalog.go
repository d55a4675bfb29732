package catalog

var (
	treatmentPrices = make(map[string]int64, len(Treatments))
	productPrices   = make(map[string]int64, len(Products))
)

func init() {
	for _, t := range Treatments {
		treatmentPrices[t.Name] = t.Price
	}
	for _, p := range Products {
		productPrices[p.Name] = p.Price
	}
}

// TreatmentPrice returns the catalog price for a treatment, or 0 when the
// name is unknown. Unknown names never error so pricing stays total.
func TreatmentPrice(name string) int64 {
	return treatmentPrices[name]
}

// ProductPrice returns the catalog price for a product, or 0 when unknown.
func ProductPrice(name string) int64 {
	return productPrices[name]
}

// ValidBranch reports whether the branch exists in any province.
func ValidBranch(branch string) bool {
	for _, branches := range Branches {
		for _, b := range branches {
			if b == branch {
				return true
			}
		}
	}
	return false
}

// ValidTimeSlot reports whether hhmm is on the daily slot grid.
func ValidTimeSlot(hhmm string) bool {
	for _, t := range TimeSlots {
		if t == hhmm {
			return true
		}
	}
	return false
}
