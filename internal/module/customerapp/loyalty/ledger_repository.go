package loyalty

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

// LedgerRepository persists the append-only history. Rows are never updated
// or deleted.
type LedgerRepository interface {
	SaveMany(ctx context.Context, customerID int64, events []Event, tx *sql.Tx) error
	FindManyByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) ([]Event, error)
}

type ledgerRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewLedgerRepository(logger *logrus.Logger, db *sql.DB) LedgerRepository {
	return &ledgerRepository{
		logger: logger,
		db:     db,
	}
}

// SaveMany implements LedgerRepository.
func (r *ledgerRepository) SaveMany(ctx context.Context, customerID int64, events []Event, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO loyalty_ledger
		(
			id, customer_id, seq, at, type, stamps, points, amount, reward_id, label, tier
		)
		VALUES
		(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving loyalty ledger's properties")
	}
	defer stmt.Close()

	for _, e := range events {
		_, err = stmt.ExecContext(ctx, e.ID, customerID, e.Seq, e.At, e.Type, e.Stamps, e.Points, e.Amount, e.RewardID, e.Label, e.Tier)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving loyalty ledger's properties")
		}
	}

	return nil
}

// FindManyByCustomerID implements LedgerRepository.
func (r *ledgerRepository) FindManyByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) ([]Event, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			id, seq, at, type, stamps, points, amount, reward_id, label, tier
		FROM loyalty_ledger
		WHERE
			customer_id = $1
		ORDER BY at ASC, seq ASC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of loyalty ledger's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, customerID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of loyalty ledger's properties")
	}

	defer rows.Close()

	var data = make([]Event, 0)
	for rows.Next() {
		var e Event

		if err := rows.Scan(&e.ID, &e.Seq, &e.At, &e.Type, &e.Stamps, &e.Points, &e.Amount, &e.RewardID, &e.Label, &e.Tier); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of loyalty ledger's properties")
		}

		data = append(data, e)
	}

	return data, nil
}
