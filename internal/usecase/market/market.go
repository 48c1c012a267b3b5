package market

import (
	"context"

	instrumentv1 "github.com/muhammadchandra19/stockmarket/internal/domain/instrument/v1"
	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Market ties the instrument registry to the order book. Every clearing price
// of a pass becomes the instrument's current price before it is forwarded
// to the external publisher.
type Market struct {
	registry  instrumentv1.Registry
	book      orderbookv1.Book
	publisher pricepublisherv1.PricePublisher
	logger    *logger.Logger
}

var _ pricepublisherv1.PricePublisher = (*Market)(nil)

// NewMarket creates a new Market. publisher may be nil.
func NewMarket(registry instrumentv1.Registry, book orderbookv1.Book, publisher pricepublisherv1.PricePublisher, log *logger.Logger) *Market {
	return &Market{
		registry:  registry,
		book:      book,
		publisher: publisher,
		logger:    log,
	}
}

// Registry returns the instrument registry of the market.
func (m *Market) Registry() instrumentv1.Registry {
	return m.registry
}

// Book returns the order book of the market.
func (m *Market) Book() orderbookv1.Book {
	return m.book
}

// PublishPrice records price as the current price of symbol and forwards it.
func (m *Market) PublishPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	if err := m.registry.SetPrice(symbol, price); err != nil {
		return err
	}

	if m.publisher == nil {
		return nil
	}
	if err := m.publisher.PublishPrice(ctx, symbol, price); err != nil {
		return errors.NewTracerf("failed to forward price of %s", symbol).Wrap(err)
	}
	return nil
}

// Trade runs one matching pass over the book.
func (m *Market) Trade(ctx context.Context) orderbookv1.PassReport {
	report := m.book.RunMatchingPass(ctx, m)

	for _, crossing := range report.Crossings {
		m.logger.InfoContext(ctx, "Cleared",
			logger.Field{Key: "symbol", Value: crossing.Symbol},
			logger.Field{Key: "price", Value: crossing.ClearingPrice.String()},
			logger.Field{Key: "volume", Value: crossing.MatchedVolume},
		)
	}
	if err := report.Err(); err != nil {
		m.logger.ErrorContext(ctx, err, logger.Field{Key: "passID", Value: report.PassID})
	}

	return report
}

// RestorePrices sets the current price of every listed instrument to the
// first price found in sources, tried in order. Instruments without a
// recorded price keep their listing price. It returns how many prices were
// restored along with every source failure.
func (m *Market) RestorePrices(ctx context.Context, sources ...pricepublisherv1.PriceSource) (int, error) {
	var (
		restored int
		errs     error
	)

	for _, instrument := range m.registry.Instruments() {
		for _, source := range sources {
			price, ok, err := source.LastPrice(ctx, instrument.Symbol)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if !ok {
				continue
			}

			if err := m.registry.SetPrice(instrument.Symbol, price); err != nil {
				errs = multierr.Append(errs, err)
				break
			}
			restored++
			m.logger.Info("Restored instrument price",
				logger.Field{Key: "symbol", Value: instrument.Symbol},
				logger.Field{Key: "price", Value: price.String()},
			)
			break
		}
	}

	return restored, errs
}
