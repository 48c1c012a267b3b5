package pricepublisher

import (
	"context"

	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/config"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// MessageWriter is the part of *kafka.Writer the publisher relies on.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes clearing prices to a Kafka topic, keyed by symbol.
type KafkaPublisher struct {
	kafkaWriter MessageWriter
	logger      *logger.Logger
}

var _ pricepublisherv1.PricePublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a new Kafka publisher for publishing price events.
func NewKafkaPublisher(config config.MatchPublisherConfig, logger *logger.Logger) *KafkaPublisher {
	kafkaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	return NewKafkaPublisherWithWriter(kafkaWriter, logger)
}

// NewKafkaPublisherWithWriter creates a Kafka publisher on top of an existing writer.
func NewKafkaPublisherWithWriter(writer MessageWriter, logger *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		kafkaWriter: writer,
		logger:      logger,
	}
}

// PublishPrice publishes a price event to the Kafka topic.
func (p *KafkaPublisher) PublishPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	event := pricepublisherv1.NewPriceEvent(ctx, symbol, price)

	value, err := event.ToBytes()
	if err != nil {
		return errors.NewTracer("failed to encode price event").Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(symbol),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "priceEvent", Value: event},
		)
		return errors.NewTracer("failed to publish price event").Wrap(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.kafkaWriter.Close()
}
