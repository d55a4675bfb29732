package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreatmentPrice(t *testing.T) {
	assert.Equal(t, int64(300), TreatmentPrice("60 Min Therapy"))
	assert.Equal(t, int64(320), TreatmentPrice("Just Feet Combo (Soak & Reflex) 60 Min"))
	assert.Equal(t, int64(140), TreatmentPrice("Herbal Foot Soak (30 Min)"))
	assert.Equal(t, int64(0), TreatmentPrice("Hot Stone Special"))
}

func TestProductPrice(t *testing.T) {
	assert.Equal(t, int64(79), ProductPrice("Green Tea"))
	assert.Equal(t, int64(129), ProductPrice("Moringa"))
	assert.Equal(t, int64(99), ProductPrice("Calcium Powder"))
	assert.Equal(t, int64(0), ProductPrice("Mystery Tonic"))
}

func TestValidBranch(t *testing.T) {
	assert.True(t, ValidBranch("Cape Town CBD"))
	assert.False(t, ValidBranch("Mos Eisley"))
}

func TestValidTimeSlot(t *testing.T) {
	for _, hhmm := range TimeSlots {
		assert.True(t, ValidTimeSlot(hhmm))
	}
	assert.False(t, ValidTimeSlot("11:00"))
}

func TestFallbackTreatmentListed(t *testing.T) {
	assert.Equal(t, "60 Min Therapy", FallbackTreatment)
	assert.Equal(t, int64(300), TreatmentPrice(FallbackTreatment))
}
