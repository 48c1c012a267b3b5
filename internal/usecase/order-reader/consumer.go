package orderreader

import (
	"context"
	"encoding/json"

	orderreaderv1 "github.com/muhammadchandra19/stockmarket/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/config"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the order reader relies on.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	SetOffset(offset int64) error
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reader represents a Kafka Reader for consuming messages from the order topic.
type Reader struct {
	kafkaReader MessageReader
	grouped     bool
	logger      *logger.Logger
}

var _ orderreaderv1.OrderReader = (*Reader)(nil)

// NewReader creates a new Kafka reader for consuming messages from the order topic.
// Without a group id the reader consumes partition 0 and its offset is driven
// by the engine snapshots; with one, offsets are committed to the group.
func NewReader(config config.KafkaConfig, log *logger.Logger) *Reader {
	readerConfig := kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	}
	if config.GroupID != "" {
		readerConfig.GroupID = config.GroupID
	} else {
		readerConfig.Partition = 0
	}

	return NewReaderWithKafka(kafka.NewReader(readerConfig), config.GroupID != "", log)
}

// NewReaderWithKafka creates a reader on top of an existing message reader.
func NewReaderWithKafka(kafkaReader MessageReader, grouped bool, log *logger.Logger) *Reader {
	return &Reader{
		kafkaReader: kafkaReader,
		grouped:     grouped,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(ctx context.Context, err error, operation string) {
	r.logger.ErrorContext(ctx, err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset sets the offset for the Kafka reader. A group reader resumes from
// its committed offset and ignores it.
func (r *Reader) SetOffset(offset int64) error {
	if r.grouped {
		return nil
	}
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(context.Background(), err, "SetOffset")
		return errors.NewTracerf("failed to set offset %d", offset).Wrap(err)
	}
	return nil
}

// ReadMessage reads a message from the Kafka topic and decodes it as a PlaceOrderRequest.
// A message that cannot be decoded is returned along with the error so the
// caller can still advance past it.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, orderreaderv1.PlaceOrderRequest, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logError(ctx, err, "ReadMessage")
		}
		return kafka.Message{}, orderreaderv1.PlaceOrderRequest{}, err
	}

	var request orderreaderv1.PlaceOrderRequest
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		r.logError(ctx, err, "UnmarshalOrder")
		return msg, orderreaderv1.PlaceOrderRequest{Offset: msg.Offset}, errors.NewTracer("failed to decode order request").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.ErrInvalidOrder), "payload"),
		)
	}

	r.logger.DebugContext(ctx, "ReadMessage",
		logger.Field{Key: "traderID", Value: request.TraderID},
		logger.Field{Key: "symbol", Value: request.Symbol},
		logger.Field{Key: "type", Value: request.Type},
		logger.Field{Key: "side", Value: request.Side},
		logger.Field{Key: "size", Value: request.Size},
		logger.Field{Key: "price", Value: request.Price.String()},
	)

	request.Offset = msg.Offset

	return msg, request, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(context.Background(), err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing. It is a no-op
// for a partition reader.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if !r.grouped {
		return nil
	}
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(ctx, err, "CommitMessages")
		return err
	}
	return nil
}
