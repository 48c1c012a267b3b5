package trader

import (
	"sort"
	"sync"

	instrumentv1 "github.com/muhammadchandra19/stockmarket/internal/domain/instrument/v1"
	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/shopspring/decimal"
)

// Directory keeps the traders known to the market, created on first use
// with the configured starting cash.
type Directory struct {
	registry    instrumentv1.Registry
	book        orderbookv1.Book
	initialCash decimal.Decimal
	logger      *logger.Logger

	mu      sync.RWMutex
	traders map[string]*Trader
}

// NewDirectory creates an empty directory.
func NewDirectory(registry instrumentv1.Registry, book orderbookv1.Book, initialCash decimal.Decimal, log *logger.Logger) *Directory {
	return &Directory{
		registry:    registry,
		book:        book,
		initialCash: initialCash,
		logger:      log,
		traders:     make(map[string]*Trader),
	}
}

// Get returns the trader registered under id.
func (d *Directory) Get(id string) (*Trader, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	trader, ok := d.traders[id]
	return trader, ok
}

// GetOrCreate returns the trader registered under id, creating it when missing.
func (d *Directory) GetOrCreate(id string) *Trader {
	if trader, ok := d.Get(id); ok {
		return trader
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	trader, ok := d.traders[id]
	if !ok {
		trader = NewTrader(id, d.initialCash, d.registry, d.book, d.logger)
		d.traders[id] = trader
		d.logger.Info("trader registered",
			logger.NewField("traderID", id),
			logger.NewField("cash", d.initialCash.String()),
		)
	}
	return trader
}

// Resolve binds a restored order to its trader. It satisfies orderbookv1.OwnerResolver.
func (d *Directory) Resolve(order *orderbookv1.Order) (orderbookv1.Owner, error) {
	if order.OwnerID == "" {
		return nil, errors.NewErrorDetails("order "+order.ID+" has no owner", string(errors.ErrUnknownParticipant), "ownerID")
	}

	trader := d.GetOrCreate(order.OwnerID)
	if err := trader.adopt(order); err != nil {
		return nil, err
	}
	return trader, nil
}

// Snapshot captures every trader, ordered by id.
func (d *Directory) Snapshot() []snapshotv1.TraderSnapshot {
	d.mu.RLock()
	traders := make([]*Trader, 0, len(d.traders))
	for _, trader := range d.traders {
		traders = append(traders, trader)
	}
	d.mu.RUnlock()

	sort.Slice(traders, func(i, j int) bool {
		return traders[i].id < traders[j].id
	})

	snapshots := make([]snapshotv1.TraderSnapshot, 0, len(traders))
	for _, trader := range traders {
		snapshots = append(snapshots, trader.Snapshot())
	}
	return snapshots
}

// Restore replaces the traders with snapshots. Open orders are re-attached
// afterwards through Resolve while the book restores.
func (d *Directory) Restore(snapshots []snapshotv1.TraderSnapshot) {
	traders := make(map[string]*Trader, len(snapshots))
	for _, snapshot := range snapshots {
		trader := NewTrader(snapshot.ID, snapshot.Cash, d.registry, d.book, d.logger)
		for symbol, volume := range snapshot.Positions {
			trader.positions[symbol] = volume
		}
		traders[snapshot.ID] = trader
	}

	d.mu.Lock()
	d.traders = traders
	d.mu.Unlock()
}
