package loyalty

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type AccountRepository interface {
	FindByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) (Account, error)
	Save(ctx context.Context, acc Account, tx *sql.Tx) error
	Update(ctx context.Context, customerID int64, acc Account, tx *sql.Tx) error
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type accountRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewAccountRepository(logger *logrus.Logger, db *sql.DB) AccountRepository {
	return &accountRepository{
		logger: logger,
		db:     db,
	}
}

// FindByCustomerID implements AccountRepository.
func (r *accountRepository) FindByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) (Account, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			customer_id, card_number, points, earned_total, stamps, tier, created_at, updated_at
		FROM loyalty_account
		WHERE
			customer_id = $1
		LIMIT 1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting loyalty account's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, customerID)

	var acc Account
	err = row.Scan(
		&acc.CustomerID, &acc.CardNumber, &acc.Points, &acc.EarnedTotal, &acc.Stamps, &acc.Tier, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("loyalty account for customer '%d' is not found", customerID))
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting loyalty account's properties")
	}

	return acc, nil
}

// Save implements AccountRepository.
func (r *accountRepository) Save(ctx context.Context, acc Account, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO loyalty_account
		(
			customer_id, card_number, points, earned_total, stamps, tier, created_at, updated_at
		)
		VALUES
		(
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving loyalty account's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, acc.CustomerID, acc.CardNumber, acc.Points, acc.EarnedTotal, acc.Stamps, acc.Tier, acc.CreatedAt, acc.UpdatedAt)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving loyalty account's properties")
	}

	return nil
}

// Update implements AccountRepository.
func (r *accountRepository) Update(ctx context.Context, customerID int64, acc Account, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE loyalty_account
		SET
			points = $1,
			earned_total = $2,
			stamps = $3,
			tier = $4,
			updated_at = $5
		WHERE customer_id = $6
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating loyalty account's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, acc.Points, acc.EarnedTotal, acc.Stamps, acc.Tier, acc.UpdatedAt, customerID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating loyalty account's properties")
	}

	return nil
}
