package orderbook

import (
	"context"
	"fmt"
	"sort"
	"sync"

	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/util"
)

var _ orderbookv1.Book = (*Book)(nil)

// symbolBook holds both sides of one symbol. mu serializes submissions and
// the matching of that symbol.
type symbolBook struct {
	mu    sync.Mutex
	buys  *arena
	sells *arena
}

func newSymbolBook() *symbolBook {
	return &symbolBook{
		buys:  newArena(),
		sells: newArena(),
	}
}

func (s *symbolBook) side(side orderbookv1.Side) *arena {
	if side == orderbookv1.SideBuy {
		return s.buys
	}
	return s.sells
}

// Book is a call auction order book. Orders rest until a matching pass
// crosses them.
type Book struct {
	mu      sync.RWMutex
	symbols map[string]*symbolBook
	logger  *logger.Logger
}

// NewBook creates an empty book.
func NewBook(log *logger.Logger) *Book {
	return &Book{
		symbols: make(map[string]*symbolBook),
		logger:  log,
	}
}

// symbol returns the book of symbol, creating it on first use.
func (b *Book) symbol(symbol string) *symbolBook {
	b.mu.RLock()
	book, ok := b.symbols[symbol]
	b.mu.RUnlock()
	if ok {
		return book
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if book, ok = b.symbols[symbol]; !ok {
		book = newSymbolBook()
		b.symbols[symbol] = book
	}
	return book
}

func (b *Book) lookup(symbol string) (*symbolBook, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	book, ok := b.symbols[symbol]
	return book, ok
}

// Submit appends order to its symbol and side. Only malformed orders are refused.
func (b *Book) Submit(order *orderbookv1.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	book := b.symbol(order.Symbol)
	book.mu.Lock()
	defer book.mu.Unlock()

	side := book.side(order.Side)
	if side.contains(order) {
		return errors.NewErrorDetails(fmt.Sprintf("order %s is already resting", order.ID), string(errors.ErrInvalidOrder), "id")
	}

	order.Status = orderbookv1.StatusResting
	side.add(order)
	return nil
}

func validateOrder(order *orderbookv1.Order) error {
	if order == nil {
		return errors.NewErrorDetails("order cannot be nil", string(errors.ErrInvalidOrder), "order")
	}

	baseErr := errors.NewBaseError()
	if order.ID == "" {
		baseErr.AddErrorDetails(errors.NewErrorDetails("order id cannot be empty", string(errors.ErrInvalidOrder), "id"))
	}
	if order.Symbol == "" {
		baseErr.AddErrorDetails(errors.NewErrorDetails("symbol cannot be empty", string(errors.ErrInvalidOrder), "symbol"))
	}
	if !order.IsBuy() && !order.IsSell() {
		baseErr.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("unknown side %s", order.Side), string(errors.ErrInvalidOrder), "side"))
	}
	if order.Size <= 0 {
		baseErr.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("size must be positive, got %d", order.Size), string(errors.ErrInvalidOrder), "size"))
	}
	if order.LimitPrice.IsNegative() {
		baseErr.AddErrorDetails(errors.NewErrorDetails("limit price cannot be negative", string(errors.ErrInvalidOrder), "limitPrice"))
	}

	if baseErr.HasDetails() {
		return baseErr
	}
	return nil
}

// RunMatchingPass matches every symbol with orders on both sides. Symbols are
// visited in lexical order and each is matched under its own lock, so a
// failure on one symbol never touches another.
func (b *Book) RunMatchingPass(ctx context.Context, publisher pricepublisherv1.PricePublisher) orderbookv1.PassReport {
	passID := util.NewID()
	ctx = util.WithRequestID(ctx, passID)

	report := orderbookv1.PassReport{PassID: passID}
	for _, symbol := range b.Symbols() {
		book, _ := b.lookup(symbol)
		b.matchSymbol(util.WithSymbol(ctx, symbol), symbol, book, publisher, &report)
	}

	b.logger.InfoContext(ctx, "matching pass finished",
		logger.NewField("crossings", len(report.Crossings)),
		logger.NewField("failures", len(report.Failures)),
		logger.NewField("publishFailures", len(report.PublishFailures)),
	)

	return report
}

func (b *Book) matchSymbol(
	ctx context.Context,
	symbol string,
	book *symbolBook,
	publisher pricepublisherv1.PricePublisher,
	report *orderbookv1.PassReport,
) {
	book.mu.Lock()
	defer book.mu.Unlock()

	if book.buys.len() == 0 || book.sells.len() == 0 {
		return
	}

	buys := prioritizeBuys(book.buys.orders())
	sells := prioritizeSells(book.sells.orders())

	crossing := FindCrossing(symbol, buys, sells)
	if !crossing.Found() {
		b.logger.DebugContext(ctx, "no crossing",
			logger.NewField("buyOrders", len(buys)),
			logger.NewField("buyVolume", buys.TotalSize()),
			logger.NewField("sellOrders", len(sells)),
			logger.NewField("sellVolume", sells.TotalSize()),
		)
		return
	}

	b.logger.InfoContext(ctx, "crossing found",
		logger.NewField("buyIndex", crossing.BuyIndex),
		logger.NewField("sellIndex", crossing.SellIndex),
		logger.NewField("clearingPrice", crossing.ClearingPrice.String()),
		logger.NewField("matchedVolume", crossing.MatchedVolume),
	)

	report.Crossings = append(report.Crossings, crossing)
	b.applyFills(ctx, book, buys, sells, crossing, publisher, report)
}

// Inspect returns the resting orders of symbol and side in insertion order.
func (b *Book) Inspect(symbol string, side orderbookv1.Side) []*orderbookv1.Order {
	book, ok := b.lookup(symbol)
	if !ok {
		return []*orderbookv1.Order{}
	}

	book.mu.Lock()
	defer book.mu.Unlock()
	return book.side(side).orders()
}

// Symbols returns every symbol that ever had an order, sorted.
func (b *Book) Symbols() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	symbols := make([]string, 0, len(b.symbols))
	for symbol := range b.symbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// CreateSnapshot captures every resting order, per symbol, buys before sells.
func (b *Book) CreateSnapshot() *snapshotv1.OrderBookSnapshot {
	bookOrders := make([]snapshotv1.BookOrder, 0)

	for _, symbol := range b.Symbols() {
		book, _ := b.lookup(symbol)

		book.mu.Lock()
		for _, side := range []orderbookv1.Side{orderbookv1.SideBuy, orderbookv1.SideSell} {
			for _, order := range book.side(side).orders() {
				bookOrders = append(bookOrders, snapshotv1.BookOrder{
					OrderID:   order.ID,
					OwnerID:   order.OwnerID,
					Symbol:    order.Symbol,
					Side:      order.Side.String(),
					Size:      order.Size,
					Price:     order.LimitPrice,
					Timestamp: order.Timestamp,
				})
			}
		}
		book.mu.Unlock()
	}

	return &snapshotv1.OrderBookSnapshot{Orders: bookOrders}
}

// Restore replaces the content of the book with snapshot. resolve binds each
// restored order to its owner; a nil resolve leaves orders without owner.
func (b *Book) Restore(snapshot *snapshotv1.OrderBookSnapshot, resolve orderbookv1.OwnerResolver) error {
	if snapshot == nil {
		return errors.NewTracer("snapshot cannot be nil")
	}

	symbols := make(map[string]*symbolBook)
	for _, bookOrder := range snapshot.Orders {
		side, err := orderbookv1.ParseSide(bookOrder.Side)
		if err != nil {
			return errors.NewTracer(fmt.Sprintf("failed to restore order %s", bookOrder.OrderID)).Wrap(err)
		}

		order := &orderbookv1.Order{
			ID:         bookOrder.OrderID,
			OwnerID:    bookOrder.OwnerID,
			Symbol:     bookOrder.Symbol,
			Side:       side,
			Size:       bookOrder.Size,
			LimitPrice: bookOrder.Price,
			Status:     orderbookv1.StatusResting,
			Timestamp:  bookOrder.Timestamp,
		}
		if err := validateOrder(order); err != nil {
			return errors.NewTracer(fmt.Sprintf("failed to restore order %s", bookOrder.OrderID)).Wrap(err)
		}

		if resolve != nil {
			owner, err := resolve(order)
			if err != nil {
				return errors.NewTracer(fmt.Sprintf("failed to resolve owner of order %s", bookOrder.OrderID)).Wrap(err)
			}
			order.Owner = owner
		}

		book, ok := symbols[order.Symbol]
		if !ok {
			book = newSymbolBook()
			symbols[order.Symbol] = book
		}
		book.side(side).add(order)
	}

	b.mu.Lock()
	b.symbols = symbols
	b.mu.Unlock()

	return nil
}
