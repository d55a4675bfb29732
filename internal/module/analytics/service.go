package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go"

	"github.com/soleterra-wellness/sw-booking/config"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/booking"
)

type FactStore interface {
	SaveFactsAndReturnFailedIDs(ctx context.Context, facts []BookingFact) ([]string, error)
}

type DeadLetterProducer interface {
	Send(ctx context.Context, originalTopic string, message []byte, cause error) error
}

// FactService turns booking lifecycle events into analytics rows, batching
// writes toward ClickHouse through a bounded worker pool.
type FactService struct {
	retryConf      config.Worker
	store          FactStore
	dlqProducer    DeadLetterProducer
	log            *slog.Logger
	confirmedTopic string
	cancelledTopic string
	batch          []BookingFact
	batchSize      int
	mu             sync.Mutex
	flushTicker    *time.Ticker
	done           chan struct{}
	workerPool     chan struct{}
	wg             sync.WaitGroup
}

func NewFactService(store FactStore, dlq DeadLetterProducer, cfg config.Worker, confirmedTopic, cancelledTopic string, log *slog.Logger) *FactService {
	s := &FactService{
		retryConf:      cfg,
		store:          store,
		dlqProducer:    dlq,
		log:            log,
		confirmedTopic: confirmedTopic,
		cancelledTopic: cancelledTopic,
		batch:          make([]BookingFact, 0, cfg.BatchSize),
		batchSize:      cfg.BatchSize,
		flushTicker:    time.NewTicker(cfg.FlushInterval),
		done:           make(chan struct{}),
		workerPool:     make(chan struct{}, cfg.WorkerCount),
	}

	go s.autoFlush()
	return s
}

// ProcessMessage parses one booking event and adds its fact to the batch.
// Malformed payloads go straight to the DLQ.
func (s *FactService) ProcessMessage(ctx context.Context, topic string, message []byte) {
	processedMessages.Inc()
	start := time.Now().UTC()
	defer func() {
		messageProcessingTime.Observe(time.Since(start).Seconds())
	}()

	var b booking.Booking
	if err := json.Unmarshal(message, &b); err != nil {
		s.log.Error("failed to unmarshal message", slog.Any("error", err))
		if err = s.dlqProducer.Send(ctx, topic, message, err); err != nil {
			s.log.Error("failed to send message to DLQ", slog.Any("error", err))
		}
		return
	}

	eventType := EventTypeCancelled
	if topic == s.confirmedTopic {
		eventType = EventTypeConfirmed
	}

	s.addToBatch(ctx, FactFromBooking(eventType, b, start))
}

// Shutdown flushes the remaining batch and waits for in-flight workers.
func (s *FactService) Shutdown() {
	s.flushTicker.Stop()
	close(s.done)

	s.mu.Lock()
	batch := append([]BookingFact(nil), s.batch...)
	s.batch = s.batch[:0]
	s.mu.Unlock()

	if len(batch) > 0 {
		s.flushBatch(context.Background(), batch)
	}

	s.wg.Wait()
}

func (s *FactService) addToBatch(ctx context.Context, fact BookingFact) {
	s.mu.Lock()
	s.batch = append(s.batch, fact)

	if len(s.batch) >= s.batchSize {
		batch := append([]BookingFact(nil), s.batch...)
		s.batch = s.batch[:0]
		s.mu.Unlock()
		s.flushBatch(ctx, batch)
		return
	}
	s.mu.Unlock()
}

func (s *FactService) autoFlush() {
	// Ticker.Stop never closes the channel, so Shutdown signals done instead.
	for {
		select {
		case <-s.done:
			return
		case <-s.flushTicker.C:
		}

		s.mu.Lock()
		if len(s.batch) == 0 {
			s.mu.Unlock()
			continue
		}
		batch := s.batch
		s.batch = nil
		s.mu.Unlock()
		s.flushBatch(context.Background(), batch)
	}
}

func (s *FactService) flushBatch(ctx context.Context, batch []BookingFact) {
	s.wg.Add(1)
	go func(ctx context.Context, batch []BookingFact) {
		defer s.handleWorkerCleanup()

		s.workerPool <- struct{}{}

		if err := s.retryAndFilterFailedBatch(ctx, &batch); err != nil {
			s.handleFinalBatchFailure(ctx, batch, err)
		}
	}(ctx, batch)
}

func (s *FactService) handleWorkerCleanup() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic in worker", slog.Any("recover", r))
		}
	}()

	<-s.workerPool
	s.wg.Done()
}

func (s *FactService) retryAndFilterFailedBatch(ctx context.Context, batch *[]BookingFact) error {
	return retry.Do(
		func() error {
			return s.saveAndFilterBatch(ctx, batch)
		},
		retry.Attempts(s.retryConf.RetryAttempts),
		retry.Delay(s.retryConf.RetryDelay),
		retry.MaxDelay(s.retryConf.RetryMaxDelay),
		retry.RetryIf(func(err error) bool {
			return isRetryableError(err)
		}),
	)
}

func (s *FactService) saveAndFilterBatch(ctx context.Context, batch *[]BookingFact) error {
	failedIDs, err := s.store.SaveFactsAndReturnFailedIDs(ctx, *batch)
	if err != nil {
		s.log.Warn("batch save attempt failed",
			slog.Int("failed_count", len(failedIDs)),
			slog.Any("error", err))
	}
	if len(failedIDs) > 0 {
		*batch = filterByIDs(*batch, failedIDs)
	}

	return err
}

func (s *FactService) handleFinalBatchFailure(ctx context.Context, batch []BookingFact, err error) {
	s.log.Error("batch save failed after retries",
		slog.Int("remaining_count", len(batch)),
		slog.Any("final_error", err),
	)

	for _, f := range batch {
		message, merr := json.Marshal(f)
		if merr != nil {
			s.log.Error("failed to marshal fact for DLQ",
				slog.Any("error", merr),
				slog.String("booking_id", f.BookingID),
			)
			continue
		}
		if serr := s.dlqProducer.Send(ctx, s.sourceTopic(f), message, err); serr != nil {
			s.log.Error("failed to send message to DLQ",
				slog.Any("error", serr),
				slog.String("booking_id", f.BookingID),
			)
		}
	}
}

// sourceTopic maps a fact back to the topic its event arrived on, so the
// dead letter keeps the right Original-Topic header.
func (s *FactService) sourceTopic(f BookingFact) string {
	if f.EventType == EventTypeConfirmed {
		return s.confirmedTopic
	}
	return s.cancelledTopic
}

func filterByIDs(facts []BookingFact, ids []string) []BookingFact {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	idx := 0
	for _, f := range facts {
		if _, exists := idSet[f.BookingID]; exists {
			facts[idx] = f
			idx++
		}
	}

	return facts[:idx]
}
