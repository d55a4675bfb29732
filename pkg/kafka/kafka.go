package kafka

import (
	"log"

	"github.com/IBM/sarama"

	"github.com/soleterra-wellness/sw-booking/config"
)

// NewAsyncProducer builds a snappy-compressed async producer from the shared
// kafka configuration.
func NewAsyncProducer() sarama.AsyncProducer {
	c := config.Get()

	version, err := sarama.ParseKafkaVersion(c.Kafka.Version)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}

	cfg := sarama.NewConfig()
	cfg.Version = version
	cfg.Producer.Return.Successes = true
	cfg.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewAsyncProducer(c.Kafka.Brokers, cfg)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}

	return producer
}
