package events

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/models"
)

type SaramaProducer struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
}

func newSaramaConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = "takeaway"
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second
	return saramaConfig
}

func NewSaramaProducer(config models.KafkaConfig, logger *zap.Logger) (*SaramaProducer, error) {
	brokerList := strings.Split(config.BrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	logger.Info("sarama producer created", zap.Strings("brokers", brokerList))
	return NewSaramaProducerFrom(producer, logger), nil
}

// NewSaramaProducerFrom wraps an existing sync producer.
func NewSaramaProducerFrom(producer sarama.SyncProducer, logger *zap.Logger) *SaramaProducer {
	return &SaramaProducer{producer: producer, logger: logger}
}

func (s *SaramaProducer) WriteMessage(topic string, msg []byte) error {
	if s.producer == nil {
		return errors.New("sarama producer is not initialized")
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		s.logger.Warn("failed to send message", zap.String("topic", topic), zap.Error(err))
		return err
	}

	s.logger.Debug("message sent", zap.String("topic", topic), zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (s *SaramaProducer) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}

// New returns a Kafka producer when enabled, otherwise a Noop publisher.
func New(config models.KafkaConfig, logger *zap.Logger) (Publisher, error) {
	if !config.Enabled {
		return Noop{}, nil
	}
	return NewSaramaProducer(config, logger)
}
