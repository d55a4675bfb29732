package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/soleterra-wellness/sw-booking/config"
)

type MessageProcessor interface {
	ProcessMessage(ctx context.Context, topic string, message []byte)
}

// BookingConsumer reads booking lifecycle events from both lifecycle topics
// as one consumer group.
type BookingConsumer struct {
	client  sarama.ConsumerGroup
	log     *slog.Logger
	service MessageProcessor
	topics  []string
	groupID string
}

type consumerGroupHandler struct {
	log     *slog.Logger
	service MessageProcessor
}

func NewBookingConsumer(cfg config.Kafka, log *slog.Logger, service MessageProcessor) (*BookingConsumer, error) {
	if len(cfg.Brokers) == 0 {
		err := errors.New("kafka brokers list is empty")
		log.Error("invalid kafka configuration", slog.String("error", err.Error()))
		return nil, err
	}

	version, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		log.Error("error parsing kafka version",
			slog.String("version", cfg.Version),
			slog.Any("error", err),
		)
		return nil, err
	}

	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Version = version
	if cfg.Oldest {
		kafkaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	}
	kafkaConfig.Consumer.Return.Errors = cfg.ReturnErrors

	client, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, kafkaConfig)
	if err != nil {
		log.Error("failed to create kafka consumer group",
			slog.String("group_id", cfg.GroupID),
			slog.Any("error", err),
		)
		return nil, err
	}

	topics := []string{cfg.ConfirmedTopic, cfg.CancelledTopic}

	log.Info("kafka consumer created successfully",
		slog.String("group_id", cfg.GroupID),
		slog.Any("topics", topics),
		slog.Any("brokers", cfg.Brokers),
	)

	return &BookingConsumer{
		client:  client,
		log:     log,
		service: service,
		topics:  topics,
		groupID: cfg.GroupID,
	}, nil
}

func (c *BookingConsumer) Consume(ctx context.Context) error {
	handler := consumerGroupHandler{
		log:     c.log.With(slog.String("component", "consumer_handler")),
		service: c.service,
	}

	c.log.Info("starting kafka consumer",
		slog.String("group_id", c.groupID),
		slog.Any("topics", c.topics),
	)

	for {
		select {
		case <-ctx.Done():
			c.log.Info("stopping consumer due to context cancellation")
			return nil
		default:
			if err := c.client.Consume(ctx, c.topics, &handler); err != nil {
				c.log.Error("kafka consumer error",
					slog.String("group_id", c.groupID),
					slog.Any("error", err),
				)
				return err
			}
		}
	}
}

func (c *BookingConsumer) Close() error {
	if err := c.client.Close(); err != nil {
		c.log.Error("failed to close kafka consumer",
			slog.String("group_id", c.groupID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func (h *consumerGroupHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.log.Info("consumer group setup complete",
		slog.String("member_id", session.MemberID()),
		slog.Int("generation_id", int(session.GenerationID())),
	)
	return nil
}

func (h *consumerGroupHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	h.log.Info("consumer group cleanup complete",
		slog.String("member_id", session.MemberID()),
		slog.Int("generation_id", int(session.GenerationID())),
	)
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()

	for msg := range claim.Messages() {
		h.service.ProcessMessage(ctx, msg.Topic, msg.Value)
		session.MarkMessage(msg, "")
	}
	return nil
}
