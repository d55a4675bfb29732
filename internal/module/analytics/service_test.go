package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleterra-wellness/sw-booking/config"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/booking"
)

type failingFactStore struct{}

// SaveFactsAndReturnFailedIDs implements FactStore.
func (failingFactStore) SaveFactsAndReturnFailedIDs(ctx context.Context, facts []BookingFact) ([]string, error) {
	return nil, errors.New("storage offline")
}

type recordingDLQ struct {
	mu     sync.Mutex
	topics []string
}

// Send implements DeadLetterProducer.
func (d *recordingDLQ) Send(ctx context.Context, originalTopic string, message []byte, cause error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.topics = append(d.topics, originalTopic)
	return nil
}

func (d *recordingDLQ) sent() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.topics...)
}

func newTestFactService(dlq *recordingDLQ) *FactService {
	cfg := config.Worker{
		BatchSize:     1,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
		RetryMaxDelay: time.Millisecond,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewFactService(failingFactStore{}, dlq, cfg, "booking-confirmed", "booking-cancelled", log)
}

func TestFactServiceDLQKeepsSourceTopic(t *testing.T) {
	dlq := &recordingDLQ{}
	s := newTestFactService(dlq)

	payload, err := json.Marshal(booking.Booking{ID: "WB-1", Branch: "Cape Town CBD"})
	require.NoError(t, err)

	s.ProcessMessage(context.Background(), "booking-cancelled", payload)
	s.ProcessMessage(context.Background(), "booking-confirmed", payload)
	s.Shutdown()

	assert.ElementsMatch(t, []string{"booking-cancelled", "booking-confirmed"}, dlq.sent())
}

func TestFactServiceShutdownStopsAutoFlush(t *testing.T) {
	s := newTestFactService(&recordingDLQ{})
	s.Shutdown()

	returned := make(chan struct{})
	go func() {
		s.autoFlush()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("autoFlush did not return after shutdown")
	}
}
