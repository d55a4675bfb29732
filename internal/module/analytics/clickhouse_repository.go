package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type FactRepository struct {
	db  driver.Conn
	log *slog.Logger
}

func NewFactRepository(db driver.Conn, log *slog.Logger) *FactRepository {
	return &FactRepository{
		db:  db,
		log: log,
	}
}

// SaveFactsAndReturnFailedIDs batch-inserts facts and reports the booking
// IDs of any rows that did not make it, so the caller can retry just those.
func (r *FactRepository) SaveFactsAndReturnFailedIDs(ctx context.Context, facts []BookingFact) ([]string, error) {
	if len(facts) == 0 {
		return nil, nil
	}

	batch, err := r.db.PrepareBatch(ctx, `
		INSERT INTO booking_facts (
			booking_id, event_type, customer_id, province, branch,
			service, service_price, products_subtotal, products_quantity,
			pre_discount_total, promo_code, promo_savings,
			loyalty_reward_id, loyalty_savings, total_amount,
			start_at, occurred_at
		) VALUES`)
	if err != nil {
		r.log.Error("failed to prepare batch", slog.Any("error", err))
		return extractIDs(facts), err
	}

	var failedIDs []string
	var allErrors []error

	for _, f := range facts {
		if err := batch.Append(
			f.BookingID, f.EventType, f.CustomerID, f.Province, f.Branch,
			f.Service, f.ServicePrice, f.ProductsSubtotal, f.ProductsQuantity,
			f.PreDiscountTotal, f.PromoCode, f.PromoSavings,
			f.LoyaltyRewardID, f.LoyaltySavings, f.TotalAmount,
			f.StartAt, f.OccurredAt,
		); err != nil {
			r.log.Error("failed to append record", slog.Any("error", err))
			failedIDs = append(failedIDs, f.BookingID)
			allErrors = append(allErrors, err)
		}
	}

	if len(failedIDs) < len(facts) {
		if err := batch.Send(); err != nil {
			r.log.Error("failed to send batch", slog.Any("error", err))
			allErrors = append(allErrors, err)
			failedIDs = extractIDs(facts[len(failedIDs):])
		}
	}

	if len(failedIDs) == 0 {
		r.log.Info("batch of booking facts saved", slog.Int("count", len(facts)))
		return nil, nil
	}

	finalErr := fmt.Errorf("failed to save %d of %d records: %w", len(failedIDs), len(facts), errors.Join(allErrors...))

	return failedIDs, finalErr
}

func (r *FactRepository) Close() error {
	return r.db.Close()
}

func extractIDs(facts []BookingFact) []string {
	ids := make([]string, 0, len(facts))
	for _, f := range facts {
		ids = append(ids, f.BookingID)
	}
	return ids
}
