package report

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type ReportRepository interface {
	AggregateByBranch(ctx context.Context, from, to time.Time) ([]BranchSummary, error)
}

type reportRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewReportRepository(logger *logrus.Logger, db *sql.DB) ReportRepository {
	return &reportRepository{
		logger: logger,
		db:     db,
	}
}

// AggregateByBranch implements ReportRepository. Cancelled bookings count
// toward the cancelled column only; revenue and savings come from the rest.
func (r *reportRepository) AggregateByBranch(ctx context.Context, from, to time.Time) ([]BranchSummary, error) {
	query := `
		SELECT
			branch,
			COUNT(id) FILTER (WHERE status <> 'CANCELLED') AS bookings,
			COUNT(id) FILTER (WHERE status = 'CANCELLED') AS cancelled,
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'CANCELLED'), 0) AS gross_revenue,
			COALESCE(SUM(promo_savings) FILTER (WHERE status <> 'CANCELLED'), 0) AS promo_savings,
			COALESCE(SUM(loyalty_savings) FILTER (WHERE status <> 'CANCELLED'), 0) AS loyalty_savings,
			COALESCE(SUM(products_subtotal) FILTER (WHERE status <> 'CANCELLED'), 0) AS products_subtotal
		FROM booking
		WHERE
			start_at >= $1
			AND start_at < $2
		GROUP BY branch
		ORDER BY branch ASC
	`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while aggregating branch report")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, from, to)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while aggregating branch report")
	}
	defer rows.Close()

	summaries := make([]BranchSummary, 0)
	for rows.Next() {
		var s BranchSummary
		err := rows.Scan(&s.Branch, &s.Bookings, &s.Cancelled, &s.GrossRevenue, &s.PromoSavings, &s.LoyaltySavings, &s.ProductsSubtotal)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while aggregating branch report")
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
