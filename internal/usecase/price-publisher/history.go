package pricepublisher

import (
	"context"
	"time"

	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/muhammadchandra19/stockmarket/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/util"
	"github.com/shopspring/decimal"
)

// HistoryPublisher appends every clearing price to the price history table.
type HistoryPublisher struct {
	repository price.PriceRepository
	now        func() time.Time
}

var (
	_ pricepublisherv1.PricePublisher = (*HistoryPublisher)(nil)
	_ pricepublisherv1.PriceSource    = (*HistoryPublisher)(nil)
)

// NewHistoryPublisher creates a new HistoryPublisher.
func NewHistoryPublisher(repository price.PriceRepository) *HistoryPublisher {
	return &HistoryPublisher{
		repository: repository,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// PublishPrice records the price with the pass id carried by ctx.
func (p *HistoryPublisher) PublishPrice(ctx context.Context, symbol string, clearingPrice decimal.Decimal) error {
	record := &price.Price{
		ID:        util.NewID(),
		Symbol:    symbol,
		Price:     clearingPrice,
		PassID:    util.GetRequestID(ctx),
		Timestamp: p.now(),
	}

	if err := p.repository.Store(ctx, record); err != nil {
		return errors.NewTracerf("failed to record price of %s", symbol).Wrap(err)
	}
	return nil
}

// LastPrice returns the most recent recorded price of symbol.
func (p *HistoryPublisher) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	record, err := p.repository.Latest(ctx, symbol)
	if err != nil {
		return decimal.Zero, false, errors.NewTracerf("failed to read price history of %s", symbol).Wrap(err)
	}
	if record == nil {
		return decimal.Zero, false, nil
	}
	return record.Price, true, nil
}
