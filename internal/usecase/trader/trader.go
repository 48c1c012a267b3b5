package trader

import (
	"context"
	"fmt"
	"sync"

	instrumentv1 "github.com/muhammadchandra19/stockmarket/internal/domain/instrument/v1"
	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/shopspring/decimal"
)

var _ orderbookv1.Owner = (*Trader)(nil)

// openOrder is an order of the trader still resting in the book. lastSize is
// the size seen at placement or at the previous notification.
type openOrder struct {
	order    *orderbookv1.Order
	lastSize int64
}

// Trader is a market participant holding cash and positions. It places at
// most one open order per symbol and settles fills as the book notifies it.
type Trader struct {
	id       string
	registry instrumentv1.Registry
	book     orderbookv1.Book
	logger   *logger.Logger

	mu        sync.Mutex
	cash      decimal.Decimal
	positions map[string]int64
	open      map[string]*openOrder // symbol -> open order
}

// NewTrader creates a trader with cash and no position.
func NewTrader(id string, cash decimal.Decimal, registry instrumentv1.Registry, book orderbookv1.Book, log *logger.Logger) *Trader {
	return &Trader{
		id:        id,
		registry:  registry,
		book:      book,
		logger:    log.WithFields(logger.NewField("traderID", id)),
		cash:      cash,
		positions: make(map[string]int64),
		open:      make(map[string]*openOrder),
	}
}

// ID returns the trader id.
func (t *Trader) ID() string {
	return t.id
}

// Cash returns the cash in hand.
func (t *Trader) Cash() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cash
}

// Position returns the held volume of symbol.
func (t *Trader) Position(symbol string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.positions[symbol]
}

// Positions returns a copy of every held position.
func (t *Trader) Positions() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	positions := make(map[string]int64, len(t.positions))
	for symbol, volume := range t.positions {
		positions[symbol] = volume
	}
	return positions
}

// OpenOrder returns the open order of symbol, if any.
func (t *Trader) OpenOrder(symbol string) (*orderbookv1.Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	open, ok := t.open[symbol]
	if !ok {
		return nil, false
	}
	return open.order, true
}

// BuyFromBank buys volume of symbol at the current instrument price straight
// into the position, without going through the book.
func (t *Trader) BuyFromBank(ctx context.Context, symbol string, volume int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	instrument, err := t.lookup(symbol)
	if err != nil {
		return err
	}
	if err := checkVolume(volume); err != nil {
		return err
	}

	cost := instrument.Price.Mul(decimal.NewFromInt(volume))
	if cost.GreaterThan(t.cash) {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("cannot buy %d %s for %s, cash in hand is %s", volume, symbol, cost, t.cash),
			string(errors.ErrInsufficientFunds), "volume", t.id,
		)
	}

	t.cash = t.cash.Sub(cost)
	t.positions[symbol] += volume

	t.logger.InfoContext(ctx, "bought from bank",
		logger.NewField("symbol", symbol),
		logger.NewField("volume", volume),
		logger.NewField("price", instrument.Price.String()),
	)
	return nil
}

// PlaceOrder places a limit order. A zero price places a marketable order.
func (t *Trader) PlaceOrder(ctx context.Context, symbol string, volume int64, price decimal.Decimal, side orderbookv1.Side) (*orderbookv1.Order, error) {
	if price.IsNegative() {
		return nil, errors.NewErrorDetails("limit price cannot be negative", string(errors.ErrInvalidOrder), "price")
	}

	order, err := t.reserve(symbol, volume, price, side)
	if err != nil {
		return nil, err
	}

	// the book may notify us while we submit, so t.mu must not be held here
	if err := t.book.Submit(order); err != nil {
		t.release(order)
		return nil, err
	}

	t.logger.InfoContext(ctx, "order placed",
		logger.NewField("orderID", order.ID),
		logger.NewField("symbol", symbol),
		logger.NewField("side", side.String()),
		logger.NewField("volume", volume),
		logger.NewField("price", price.String()),
	)
	return order, nil
}

// PlaceMarketOrder places a marketable order (limit price 0).
func (t *Trader) PlaceMarketOrder(ctx context.Context, symbol string, volume int64, side orderbookv1.Side) (*orderbookv1.Order, error) {
	return t.PlaceOrder(ctx, symbol, volume, decimal.Zero, side)
}

// reserve runs the placement checks and records the order as open.
func (t *Trader) reserve(symbol string, volume int64, price decimal.Decimal, side orderbookv1.Side) (*orderbookv1.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	instrument, err := t.lookup(symbol)
	if err != nil {
		return nil, err
	}
	if err := checkVolume(volume); err != nil {
		return nil, err
	}
	if _, ok := t.open[symbol]; ok {
		return nil, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("cannot place multiple orders for %s", symbol),
			string(errors.ErrDuplicateOrder), "symbol", t.id,
		)
	}

	switch side {
	case orderbookv1.SideBuy:
		// funds are checked at the instrument price, not the limit
		cost := instrument.Price.Mul(decimal.NewFromInt(volume))
		if cost.GreaterThan(t.cash) {
			return nil, errors.NewErrorDetailsWithObject(
				fmt.Sprintf("cannot buy %d %s for %s, cash in hand is %s", volume, symbol, cost, t.cash),
				string(errors.ErrInsufficientFunds), "volume", t.id,
			)
		}
	case orderbookv1.SideSell:
		held, ok := t.positions[symbol]
		if !ok || held == 0 {
			return nil, errors.NewErrorDetailsWithObject(
				fmt.Sprintf("cannot sell %s, it is not held", symbol),
				string(errors.ErrUnheldInstrument), "symbol", t.id,
			)
		}
		if held < volume {
			return nil, errors.NewErrorDetailsWithObject(
				fmt.Sprintf("cannot sell %d %s, only %d held", volume, symbol, held),
				string(errors.ErrOversell), "volume", t.id,
			)
		}
	default:
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown side %s", side), string(errors.ErrInvalidOrder), "side")
	}

	order := orderbookv1.NewOrder(t, t.id, symbol, side, volume, price)
	t.open[symbol] = &openOrder{order: order, lastSize: volume}
	return order, nil
}

func (t *Trader) release(order *orderbookv1.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if open, ok := t.open[order.Symbol]; ok && open.order == order {
		delete(t.open, order.Symbol)
	}
}

func (t *Trader) lookup(symbol string) (instrumentv1.Instrument, error) {
	instrument, ok := t.registry.LookupInstrument(symbol)
	if !ok {
		return instrumentv1.Instrument{}, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("instrument %s is not listed", symbol),
			string(errors.ErrUnknownInstrument), "symbol", t.id,
		)
	}
	return instrument, nil
}

func checkVolume(volume int64) error {
	if volume <= 0 {
		return errors.NewErrorDetails(fmt.Sprintf("volume must be positive, got %d", volume), string(errors.ErrInvalidOrder), "volume")
	}
	return nil
}

// NotifyFilled settles a fill of one of the trader's orders at clearingPrice.
// The filled volume is the size lost since the previous notification, or the
// whole last known size once the order left the book.
func (t *Trader) NotifyFilled(order *orderbookv1.Order, clearingPrice decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	open, ok := t.open[order.Symbol]
	if !ok || open.order.ID != order.ID {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("order %s is not an open order of trader %s", order.ID, t.id),
			string(errors.ErrNotificationFailed), "orderID", order.ID,
		)
	}

	filled := open.lastSize - order.Size
	if order.IsFilled() {
		filled = open.lastSize
	}
	if filled < 0 {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("order %s grew from %d to %d", order.ID, open.lastSize, order.Size),
			string(errors.ErrNotificationFailed), "size", order.ID,
		)
	}

	amount := clearingPrice.Mul(decimal.NewFromInt(filled))
	switch {
	case order.IsBuy():
		t.cash = t.cash.Sub(amount)
		t.positions[order.Symbol] += filled
	case order.IsSell():
		t.cash = t.cash.Add(amount)
		t.positions[order.Symbol] -= filled
		if t.positions[order.Symbol] <= 0 {
			delete(t.positions, order.Symbol)
		}
	}

	if order.IsFilled() {
		delete(t.open, order.Symbol)
	} else {
		open.lastSize = order.Size
	}

	t.logger.Debug("fill settled",
		logger.NewField("orderID", order.ID),
		logger.NewField("symbol", order.Symbol),
		logger.NewField("side", order.Side.String()),
		logger.NewField("filled", filled),
		logger.NewField("price", clearingPrice.String()),
		logger.NewField("cash", t.cash.String()),
	)
	return nil
}

// adopt records a restored book order as open.
func (t *Trader) adopt(order *orderbookv1.Order) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if open, ok := t.open[order.Symbol]; ok && open.order.ID != order.ID {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("trader %s already has order %s open for %s", t.id, open.order.ID, order.Symbol),
			string(errors.ErrDuplicateOrder), "symbol", order.ID,
		)
	}

	t.open[order.Symbol] = &openOrder{order: order, lastSize: order.Size}
	return nil
}

// Snapshot captures cash and positions.
func (t *Trader) Snapshot() snapshotv1.TraderSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	positions := make(map[string]int64, len(t.positions))
	for symbol, volume := range t.positions {
		positions[symbol] = volume
	}
	return snapshotv1.TraderSnapshot{
		ID:        t.id,
		Cash:      t.cash,
		Positions: positions,
	}
}
