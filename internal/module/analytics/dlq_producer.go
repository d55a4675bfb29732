package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/soleterra-wellness/sw-booking/config"
)

type DLQProducer struct {
	producer sarama.AsyncProducer
	log      *slog.Logger
	topic    string
}

func NewDLQProducer(cfg config.Kafka, log *slog.Logger) (*DLQProducer, error) {
	if len(cfg.Brokers) == 0 {
		err := errors.New("kafka brokers list is empty")
		log.Error("invalid kafka configuration", slog.String("error", err.Error()))
		return nil, err
	}
	if cfg.DLQTopic == "" {
		err := errors.New("kafka dlq topic is empty")
		log.Error("invalid kafka configuration", slog.String("error", err.Error()))
		return nil, err
	}

	version, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		log.Error("error parsing kafka version", slog.String("version", cfg.Version), slog.Any("error", err))
		return nil, err
	}

	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Version = version
	kafkaConfig.Producer.Return.Successes = true
	kafkaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, kafkaConfig)
	if err != nil {
		log.Error("failed to create kafka dlq producer", slog.Any("error", err))
		return nil, err
	}

	return &DLQProducer{
		producer: producer,
		log:      log,
		topic:    cfg.DLQTopic,
	}, nil
}

// Send forwards a poison message to the DLQ topic with its origin and the
// failure reason in headers.
func (p *DLQProducer) Send(ctx context.Context, originalTopic string, message []byte, cause error) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(message),
		Headers: []sarama.RecordHeader{
			{Key: []byte("Original-Topic"), Value: []byte(originalTopic)},
			{Key: []byte("Error"), Value: []byte(cause.Error())},
		},
	}

	select {
	case p.producer.Input() <- msg:
		dlqMessages.Inc()
		return nil
	case <-ctx.Done():
		p.log.Warn("context cancelled before sending message to DLQ",
			slog.Any("error", ctx.Err()),
			slog.String("original_topic", originalTopic),
		)
		return ctx.Err()
	}
}

func (p *DLQProducer) Close() error {
	if err := p.producer.Close(); err != nil {
		p.log.Error("failed to close kafka dlq producer", slog.Any("error", err))
		return err
	}
	return nil
}
