package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/pricing"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/session"
)

func TestBuildBookingFreezesPromoSnapshot(t *testing.T) {
	u := &bookingUseCase{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	sess := session.Account{ID: 42, Name: "Thandi", Email: "thandi@example.com"}

	draft := &cart.Draft{
		Province:  "Western Cape",
		Branch:    "Cape Town CBD",
		Service:   "60 Min Therapy",
		StartAt:   time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
		PromoCode: "WELLNESS10",
	}
	computed := cart.Compute(draft)
	sel := pricing.Selection{
		Type:   pricing.TypePromo,
		Amount: 30,
		Promo:  &promotion.Result{Code: "WELLNESS10", Amount: 30},
	}

	b := u.buildBooking(sess, draft, computed, sel, now)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, int64(42), b.CustomerID)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, "WELLNESS10", b.PromoCode)
	assert.Equal(t, int64(30), b.PromoSavings)
	assert.Empty(t, b.LoyaltyRewardID)
	assert.Equal(t, int64(0), b.LoyaltySavings)
	assert.Equal(t, int64(270), b.TotalAmount)
}

func TestBuildBookingRewardSnapshot(t *testing.T) {
	u := &bookingUseCase{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	draft := &cart.Draft{
		Branch:          "Cape Town CBD",
		Service:         "60 Min Therapy",
		StartAt:         time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
		LoyaltyRewardID: loyalty.RewardR50Off,
	}
	computed := cart.Compute(draft)
	sel := pricing.Selection{
		Type:   pricing.TypeReward,
		Amount: 50,
		Reward: &loyalty.RewardResult{ID: loyalty.RewardR50Off, Amount: 50},
	}

	b := u.buildBooking(session.Account{ID: 7}, draft, computed, sel, now)

	assert.Equal(t, loyalty.RewardR50Off, b.LoyaltyRewardID)
	assert.Equal(t, int64(50), b.LoyaltySavings)
	assert.Empty(t, b.PromoCode)
	assert.Equal(t, int64(250), b.TotalAmount)
}

func TestBuildBookingDefaultsEndTime(t *testing.T) {
	u := &bookingUseCase{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	draft := &cart.Draft{
		Branch:  "Cape Town CBD",
		Service: "60 Min Therapy",
		StartAt: start,
	}

	b := u.buildBooking(session.Account{ID: 7}, draft, cart.Compute(draft), pricing.Selection{Type: pricing.TypeNone}, now)

	assert.Equal(t, start.Add(60*time.Minute), b.EndAt)
}

func TestBuildBookingTotalNeverNegative(t *testing.T) {
	u := &bookingUseCase{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	draft := &cart.Draft{
		Branch:  "Cape Town CBD",
		Service: "Hot Stone Special",
		StartAt: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
	}
	sel := pricing.Selection{
		Type:   pricing.TypePromo,
		Amount: 50,
		Promo:  &promotion.Result{Code: "CPT50", Amount: 50},
	}

	b := u.buildBooking(session.Account{ID: 7}, draft, cart.Compute(draft), sel, now)

	assert.Equal(t, int64(0), b.TotalAmount)
}
