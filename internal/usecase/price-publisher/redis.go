package pricepublisher

import (
	"context"

	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/redis"
	"github.com/shopspring/decimal"
)

// RedisPublisher keeps the last clearing price of every symbol in a redis hash
// and announces each new price on a pub/sub channel.
type RedisPublisher struct {
	client  redis.Client
	hashKey string
	channel string
	logger  *logger.Logger
}

var (
	_ pricepublisherv1.PricePublisher = (*RedisPublisher)(nil)
	_ pricepublisherv1.PriceSource    = (*RedisPublisher)(nil)
)

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client redis.Client, hashKey, channel string, logger *logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		hashKey: hashKey,
		channel: channel,
		logger:  logger,
	}
}

// PublishPrice stores the price under the symbol field and publishes the event.
func (p *RedisPublisher) PublishPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	if _, err := p.client.HSet(ctx, p.hashKey, map[string]any{symbol: price.String()}); err != nil {
		p.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "store last price"})
		return errors.NewTracer("failed to store last price").Wrap(err)
	}

	payload, err := pricepublisherv1.NewPriceEvent(ctx, symbol, price).ToBytes()
	if err != nil {
		return errors.NewTracer("failed to encode price event").Wrap(err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "publish price"})
		return errors.NewTracer("failed to publish price").Wrap(err)
	}

	p.logger.DebugContext(ctx, "Published price",
		logger.Field{Key: "price", Value: price.String()},
		logger.Field{Key: "receivers", Value: receivers},
	)
	return nil
}

// LastPrice returns the last published price of symbol, false when none was published.
func (p *RedisPublisher) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	raw, err := p.client.HGet(ctx, p.hashKey, symbol)
	if err != nil {
		return decimal.Zero, false, errors.NewTracer("failed to read last price").Wrap(err)
	}
	if raw == "" {
		return decimal.Zero, false, nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, errors.NewTracer("failed to parse last price").Wrap(err)
	}
	return price, true, nil
}
