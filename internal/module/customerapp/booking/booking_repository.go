package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type BookingRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	CommitTx(ctx context.Context, tx *sql.Tx) error
	Rollback(ctx context.Context, tx *sql.Tx) error

	Save(ctx context.Context, b Booking, tx *sql.Tx) error
	FindByID(ctx context.Context, ID string, tx *sql.Tx) (Booking, error)
	FindManyByCustomerID(ctx context.Context, customerID int64, offset, limit int64, tx *sql.Tx) ([]Booking, error)
	Count(ctx context.Context, customerID int64, tx *sql.Tx) (int64, error)
	FindManyByBranchAndDay(ctx context.Context, branch string, dayStart, dayEnd time.Time, tx *sql.Tx) ([]Booking, error)
	Update(ctx context.Context, ID string, b Booking, tx *sql.Tx) error
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type bookingRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewBookingRepository(logger *logrus.Logger, db *sql.DB) BookingRepository {
	return &bookingRepository{
		logger: logger,
		db:     db,
	}
}

// BeginTx implements BookingRepository.
func (r *bookingRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to begin transaction")
	}

	return tx, nil
}

// CommitTx implements BookingRepository.
func (r *bookingRepository) CommitTx(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to commit transaction")
	}

	return nil
}

// Rollback implements BookingRepository.
func (r *bookingRepository) Rollback(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to rollback transaction")
	}

	return nil
}

const bookingColumns = `
	id, customer_id, customer_name, customer_email, province, branch,
	service, service_price, products, products_subtotal, pre_discount_total,
	promo_code, promo_savings, loyalty_reward_id, loyalty_savings, total_amount,
	start_at, end_at, therapist_name, oil_fragrance, massage_intensity, special_instructions,
	status, created_at, updated_at, cancelled_at
`

// Save implements BookingRepository.
func (r *bookingRepository) Save(ctx context.Context, b Booking, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO booking
		(` + bookingColumns + `)
		VALUES
		(
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26
		)
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving booking's properties")
	}
	defer stmt.Close()

	productsBuff, _ := json.Marshal(b.Products)

	_, err = stmt.ExecContext(ctx,
		b.ID, b.CustomerID, b.CustomerName, b.CustomerEmail, b.Province, b.Branch,
		b.Service, b.ServicePrice, productsBuff, b.ProductsSubtotal, b.PreDiscountTotal,
		b.PromoCode, b.PromoSavings, b.LoyaltyRewardID, b.LoyaltySavings, b.TotalAmount,
		b.StartAt, b.EndAt, b.TherapistName, b.OilFragrance, b.MassageIntensity, b.SpecialInstructions,
		b.Status, b.CreatedAt, b.UpdatedAt, b.CancelledAt,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving booking's properties")
	}

	return nil
}

func scanBooking(scan func(dest ...interface{}) error) (Booking, error) {
	var b Booking
	var productsBuff []byte
	var cancelledAt sql.NullTime

	err := scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerEmail, &b.Province, &b.Branch,
		&b.Service, &b.ServicePrice, &productsBuff, &b.ProductsSubtotal, &b.PreDiscountTotal,
		&b.PromoCode, &b.PromoSavings, &b.LoyaltyRewardID, &b.LoyaltySavings, &b.TotalAmount,
		&b.StartAt, &b.EndAt, &b.TherapistName, &b.OilFragrance, &b.MassageIntensity, &b.SpecialInstructions,
		&b.Status, &b.CreatedAt, &b.UpdatedAt, &cancelledAt,
	)
	if err != nil {
		return Booking{}, err
	}

	if len(productsBuff) > 0 {
		_ = json.Unmarshal(productsBuff, &b.Products)
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}

	return b, nil
}

// FindByID implements BookingRepository.
func (r *bookingRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Booking, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM booking
		WHERE
			id = $1
		LIMIT 1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Booking{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting booking's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, ID)

	b, err := scanBooking(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Booking{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("booking's properties with id '%s' is not found", ID))
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Booking{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting booking's properties")
	}

	return b, nil
}

// FindManyByCustomerID implements BookingRepository.
func (r *bookingRepository) FindManyByCustomerID(ctx context.Context, customerID int64, offset, limit int64, tx *sql.Tx) ([]Booking, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM booking
		WHERE
			customer_id = $1
		ORDER BY created_at DESC
		OFFSET $2
		LIMIT $3
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of booking's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, customerID, offset, limit)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of booking's properties")
	}
	defer rows.Close()

	bookings := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of booking's properties")
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

// Count implements BookingRepository.
func (r *bookingRepository) Count(ctx context.Context, customerID int64, tx *sql.Tx) (int64, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT COUNT(id)
		FROM booking
		WHERE
			customer_id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting booking's properties")
	}
	defer stmt.Close()

	var total int64
	if err := stmt.QueryRowContext(ctx, customerID).Scan(&total); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting booking's properties")
	}

	return total, nil
}

// FindManyByBranchAndDay implements BookingRepository. Cancelled bookings are
// excluded so their slots open up again.
func (r *bookingRepository) FindManyByBranchAndDay(ctx context.Context, branch string, dayStart, dayEnd time.Time, tx *sql.Tx) ([]Booking, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM booking
		WHERE
			branch = $1
			AND start_at >= $2
			AND start_at < $3
			AND status <> $4
		ORDER BY start_at ASC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of booking's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, branch, dayStart, dayEnd, StatusCancelled)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of booking's properties")
	}
	defer rows.Close()

	bookings := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of booking's properties")
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

// Update implements BookingRepository.
func (r *bookingRepository) Update(ctx context.Context, ID string, b Booking, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE booking
		SET
			status = $1,
			updated_at = $2,
			cancelled_at = $3
		WHERE id = $4
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating booking's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, b.Status, b.UpdatedAt, b.CancelledAt, ID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating booking's properties")
	}

	return nil
}
