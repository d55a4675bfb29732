package pricing

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/session"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
)

type PricingUseCase interface {
	Quote(ctx context.Context, req QuoteRequest) (QuoteResponse, error)
}

type pricingUseCase struct {
	logger            *logrus.Logger
	timeout           time.Duration
	accountRepository loyalty.AccountRepository
}

type PricingUseCaseProperty struct {
	Logger            *logrus.Logger
	Timeout           time.Duration
	AccountRepository loyalty.AccountRepository
}

func NewPricingUseCase(props PricingUseCaseProperty) PricingUseCase {
	return &pricingUseCase{
		logger:            props.Logger,
		timeout:           props.Timeout,
		accountRepository: props.AccountRepository,
	}
}

// Quote implements PricingUseCase. It prices the draft, scores the promo
// code and the selected reward against the customer's current balance, and
// applies whichever discount wins.
func (u *pricingUseCase) Quote(ctx context.Context, req QuoteRequest) (QuoteResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	sess, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return QuoteResponse{}, err
	}

	acc, err := u.accountRepository.FindByCustomerID(ctx, sess.ID, nil)
	if err != nil {
		ae := errors.Destruct(err)
		if ae.HTTPStatusCode != http.StatusNotFound {
			return QuoteResponse{}, err
		}
		// no account yet: quote against a fresh zero-balance one
		acc = loyalty.Account{CustomerID: sess.ID, Tier: loyalty.TierFor(0).Name}
	}

	draft := req.Canonical()
	computed := cart.Compute(draft)

	sel := Choose(promotion.Evaluate(draft), loyalty.EvaluateReward(draft, acc))

	resp := QuoteResponse{}
	resp.PopulateFromSelection(computed, sel)

	return resp, nil
}
