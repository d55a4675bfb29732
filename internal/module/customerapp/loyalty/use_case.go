package loyalty

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/internal/pkg/session"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type LoyaltyUseCase interface {
	GetAccount(ctx context.Context) (GetAccountResponse, error)
}

type loyaltyUseCase struct {
	logger            *logrus.Logger
	timeout           time.Duration
	accountRepository AccountRepository
	ledgerRepository  LedgerRepository
}

type LoyaltyUseCaseProperty struct {
	Logger            *logrus.Logger
	Timeout           time.Duration
	AccountRepository AccountRepository
	LedgerRepository  LedgerRepository
}

func NewLoyaltyUseCase(props LoyaltyUseCaseProperty) LoyaltyUseCase {
	return &loyaltyUseCase{
		logger:            props.Logger,
		timeout:           props.Timeout,
		accountRepository: props.AccountRepository,
		ledgerRepository:  props.LedgerRepository,
	}
}

// GetAccount implements LoyaltyUseCase. Customers without an account yet get
// a fresh one provisioned from their session, so the first read never fails.
func (u *loyaltyUseCase) GetAccount(ctx context.Context) (GetAccountResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	sess, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return GetAccountResponse{}, err
	}

	acc, err := u.accountRepository.FindByCustomerID(ctx, sess.ID, nil)
	if err != nil {
		ae := errors.Destruct(err)
		if ae.HTTPStatusCode != http.StatusNotFound {
			return GetAccountResponse{}, err
		}

		acc, err = u.provision(ctx, sess)
		if err != nil {
			return GetAccountResponse{}, err
		}
	}

	history, err := u.ledgerRepository.FindManyByCustomerID(ctx, sess.ID, nil)
	if err != nil {
		return GetAccountResponse{}, err
	}
	acc.History = history

	resp := GetAccountResponse{}
	resp.PopulateFromEntity(acc)

	return resp, nil
}

func (u *loyaltyUseCase) provision(ctx context.Context, sess session.Account) (Account, error) {
	if sess.CardNumber != "" && !ValidCardNumber(sess.CardNumber) {
		return Account{}, errors.New(http.StatusUnprocessableEntity, status.UNPROCESSABLE_ENTITY, "loyalty card number fails its check digit")
	}

	now := time.Now()
	acc := Account{
		CustomerID:  sess.ID,
		CardNumber:  sess.CardNumber,
		Points:      0,
		EarnedTotal: 0,
		Stamps:      0,
		Tier:        TierFor(0).Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.accountRepository.Save(ctx, acc, nil); err != nil {
		return Account{}, err
	}

	return acc, nil
}
