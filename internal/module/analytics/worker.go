package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/soleterra-wellness/sw-booking/config"
)

type Consumer interface {
	Consume(ctx context.Context) error
	Close() error
}

type Producer interface {
	Close() error
}

type Store interface {
	Close() error
}

type Service interface {
	Shutdown()
}

// Worker wires the booking event consumer, the batching service, the
// ClickHouse store and the DLQ producer into one runnable unit.
type Worker struct {
	log         *slog.Logger
	consumer    Consumer
	dlqProducer Producer
	store       Store
	service     Service
}

func NewWorker(cfg *config.Config, log *slog.Logger) (*Worker, error) {
	RegisterMetrics()

	conn, err := openClickHouse(cfg.ClickHouse, log)
	if err != nil {
		return nil, err
	}

	if err := migrate(conn); err != nil {
		log.Error("failed to create table booking_facts", slog.Any("error", err))
		return nil, err
	}

	factRepo := NewFactRepository(conn, log)

	dlqProducer, err := NewDLQProducer(cfg.Kafka, log)
	if err != nil {
		return nil, err
	}

	factService := NewFactService(factRepo, dlqProducer, cfg.Worker, cfg.Kafka.ConfirmedTopic, cfg.Kafka.CancelledTopic, log)

	consumer, err := NewBookingConsumer(cfg.Kafka, log, factService)
	if err != nil {
		return nil, err
	}

	return &Worker{
		log:         log,
		consumer:    consumer,
		dlqProducer: dlqProducer,
		store:       factRepo,
		service:     factService,
	}, nil
}

func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("worker started, consuming messages")
	return w.consumer.Consume(ctx)
}

func (w *Worker) Shutdown(ctx context.Context) error {
	w.log.Info("shutting down worker")

	if err := w.consumer.Close(); err != nil {
		w.log.Error("failed to close message consumer", slog.Any("error", err))
	}

	w.service.Shutdown()

	if err := w.store.Close(); err != nil {
		w.log.Error("failed to close fact store", slog.Any("error", err))
	}

	if err := w.dlqProducer.Close(); err != nil {
		w.log.Error("failed to close dlq producer", slog.Any("error", err))
	}

	w.log.Info("worker stopped")
	return nil
}

func openClickHouse(cfg config.ClickHouse, log *slog.Logger) (driver.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": cfg.MaxExecutionTime,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout:     cfg.DialTimeout,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Error("failed to connect to clickhouse", slog.Any("error", err))
		return nil, err
	}

	if err = conn.Ping(context.Background()); err != nil {
		log.Error("failed to ping clickhouse", slog.Any("error", err))
		return nil, err
	}

	return conn, nil
}

func migrate(conn driver.Conn) error {
	return conn.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS booking_facts (
			booking_id String,
			event_type String,
			customer_id Int64,
			province String,
			branch String,
			service String,
			service_price Int64,
			products_subtotal Int64,
			products_quantity Int64,
			pre_discount_total Int64,
			promo_code String,
			promo_savings Int64,
			loyalty_reward_id String,
			loyalty_savings Int64,
			total_amount Int64,
			start_at DateTime,
			occurred_at DateTime,
			created_at DateTime DEFAULT now()
		) ENGINE = MergeTree() ORDER BY (occurred_at, branch);`)
}
