package pubsub

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte)
	Close() error
}

type saramaPublisher struct {
	logger   *logrus.Logger
	producer sarama.AsyncProducer
}

// PublisherFromSaramaAsyncProducer adapts a sarama async producer to the
// Publisher interface. Delivery failures are logged, not returned; callers
// treat publishing as fire-and-forget.
func PublisherFromSaramaAsyncProducer(logger *logrus.Logger, producer sarama.AsyncProducer) Publisher {
	p := &saramaPublisher{
		logger:   logger,
		producer: producer,
	}

	go p.drain()

	return p
}

func (p *saramaPublisher) drain() {
	for {
		select {
		case _, ok := <-p.producer.Successes():
			if !ok {
				return
			}
		case err, ok := <-p.producer.Errors():
			if !ok {
				return
			}
			p.logger.WithError(err).Error("message delivery failed")
		}
	}
}

func (p *saramaPublisher) Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) {
	recordHeaders := make([]sarama.RecordHeader, 0, len(headers))
	for k, v := range headers {
		recordHeaders = append(recordHeaders, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(message),
		Headers: recordHeaders,
	}

	select {
	case p.producer.Input() <- msg:
	case <-ctx.Done():
		p.logger.WithError(ctx.Err()).WithField("topic", topic).Warn("context cancelled before publish")
	}
}

func (p *saramaPublisher) Close() error {
	return p.producer.Close()
}
