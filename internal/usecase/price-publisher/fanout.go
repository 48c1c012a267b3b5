package pricepublisher

import (
	"context"

	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Fanout forwards every price to each of its publishers. A failing publisher
// does not stop the others; their errors are combined.
type Fanout []pricepublisherv1.PricePublisher

var _ pricepublisherv1.PricePublisher = Fanout(nil)

// NewFanout creates a Fanout, skipping nil publishers.
func NewFanout(publishers ...pricepublisherv1.PricePublisher) Fanout {
	fanout := make(Fanout, 0, len(publishers))
	for _, publisher := range publishers {
		if publisher != nil {
			fanout = append(fanout, publisher)
		}
	}
	return fanout
}

// PublishPrice implements pricepublisherv1.PricePublisher.
func (f Fanout) PublishPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	var err error
	for _, publisher := range f {
		err = multierr.Append(err, publisher.PublishPrice(ctx, symbol, price))
	}
	return err
}
