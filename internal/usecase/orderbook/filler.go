package orderbook

import (
	"context"
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/shopspring/decimal"
)

// applyFills publishes the clearing price of crossing, then walks
// buys[0..BuyIndex] and sells[0..SellIndex] adjusting the book and notifying
// owners. Failures are recorded on report and never stop a walk.
func (b *Book) applyFills(
	ctx context.Context,
	book *symbolBook,
	buys, sells orderbookv1.Orders,
	crossing orderbookv1.Crossing,
	publisher pricepublisherv1.PricePublisher,
	report *orderbookv1.PassReport,
) {
	price := crossing.ClearingPrice

	if publisher != nil {
		if err := publisher.PublishPrice(ctx, crossing.Symbol, price); err != nil {
			report.PublishFailures = append(report.PublishFailures, orderbookv1.PublishFailure{
				Symbol: crossing.Symbol,
				Err:    err,
			})
			b.logger.ErrorContext(ctx, err, logger.NewField("action", "publish_price"))
		}
	}

	// remaining is only decremented by fully consumed orders; a partial fill
	// reduces the order by what is left and the walk goes on.
	remaining := crossing.MatchedVolume
	for _, order := range buys[:crossing.BuyIndex+1] {
		if order.Size <= remaining {
			book.buys.remove(order)
			order.Status = orderbookv1.StatusFilled
			remaining -= order.Size
		} else {
			order.Size -= remaining
		}
		b.notify(ctx, order, price, report)
	}

	for _, order := range sells[:crossing.SellIndex+1] {
		book.sells.remove(order)
		order.Status = orderbookv1.StatusFilled
		b.notify(ctx, order, price, report)
	}

	book.buys.compact()
	book.sells.compact()
}

func (b *Book) notify(ctx context.Context, order *orderbookv1.Order, price decimal.Decimal, report *orderbookv1.PassReport) {
	err := notifyOwner(order, price)
	if err == nil {
		return
	}

	report.Failures = append(report.Failures, orderbookv1.FillFailure{
		Symbol:  order.Symbol,
		OrderID: order.ID,
		OwnerID: order.OwnerID,
		Side:    order.Side,
		Err:     err,
	})
	b.logger.ErrorContext(ctx, err,
		logger.NewField("action", "notify_filled"),
		logger.NewField("orderID", order.ID),
		logger.NewField("ownerID", order.OwnerID),
	)
}

// notifyOwner turns a panicking owner into an error.
func notifyOwner(order *orderbookv1.Order, price decimal.Decimal) (err error) {
	if order.Owner == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.NewTracer(fmt.Sprintf("owner of order %s panicked: %v", order.ID, r))
		}
	}()

	return order.Owner.NotifyFilled(order, price)
}
