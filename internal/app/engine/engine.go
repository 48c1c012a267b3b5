package engine

import (
	"context"
	"sync"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/stockmarket/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/market"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/trader"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/util"
	"github.com/segmentio/kafka-go"
)

const readBackoff = 100 * time.Millisecond

// Engine feeds the order stream to the traders, runs the periodic matching
// pass and snapshots the market.
type Engine struct {
	market        *market.Market
	directory     *trader.Directory
	orderReader   orderreaderv1.OrderReader
	snapshotStore snapshotv1.Store
	logger        *logger.Logger

	// state serializes order processing, matching passes and snapshots so a
	// snapshot always matches its order offset
	state sync.Mutex

	mu                 sync.RWMutex
	orderOffset        int64
	lastSnapshotOffset int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	matchInterval       time.Duration
	snapshotInterval    time.Duration
	snapshotOffsetDelta int64

	statsMutex     sync.RWMutex
	totalPasses    int64
	totalCrossings int64
}

// NewEngine creates a new instance of Engine with the default options.
func NewEngine(
	market *market.Market,
	directory *trader.Directory,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	logger *logger.Logger,
) (*Engine, error) {
	return NewEngineWithOptions(market, directory, orderReader, snapshotStore, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options and restores
// the latest stored snapshot.
func NewEngineWithOptions(
	market *market.Market,
	directory *trader.Directory,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	logger *logger.Logger,
	options *Options,
) (*Engine, error) {
	e := &Engine{
		market:        market,
		directory:     directory,
		orderReader:   orderReader,
		snapshotStore: snapshotStore,
		logger:        logger,

		matchInterval:       options.MatchInterval,
		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		orderOffset:         -1,
		lastSnapshotOffset:  -1,
		ctx:                 context.Background(),
	}

	if err := e.loadSnapshot(context.Background()); err != nil {
		return nil, errors.NewTracer("failed to load snapshot").Wrap(err)
	}

	return e, nil
}

// Start positions the order reader after the restored offset and starts the
// processing routines.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.orderReader.SetOffset(nextOffset(e.getOrderOffset())); err != nil {
		return errors.NewTracer("failed to set offset for order reader").Wrap(err)
	}

	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(3)
	go e.runOrderProcessor()
	go e.runMatcher()
	go e.runSnapshotManager()

	e.logger.Info("Engine started",
		logger.Field{Key: "matchInterval", Value: e.matchInterval.String()},
		logger.Field{Key: "orderOffset", Value: e.getOrderOffset()},
	)

	return nil
}

// nextOffset returns the first offset to read after offset was processed.
func nextOffset(offset int64) int64 {
	if offset < 0 {
		return kafka.FirstOffset
	}
	return offset + 1
}

// Stop gracefully shuts down the engine and stores a final snapshot when
// orders were processed since the last one.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}

	if e.getOrderOffset() > e.getLastSnapshotOffset() {
		if err := e.createAndStoreSnapshot(ctx); err != nil {
			return err
		}
	}

	e.logger.Info("Engine stopped gracefully")
	return nil
}

// runOrderProcessor reads the order stream and hands every request to its trader.
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()
	defer e.orderReader.Close()

	e.logger.Info("Starting order processor")

	for {
		msg, request, err := e.orderReader.ReadMessage(e.ctx)
		if e.ctx.Err() != nil {
			e.logger.Info("Order processor shutting down")
			return
		}

		if err != nil && !errors.ErrorCodeEquals(err, errors.ErrInvalidOrder) {
			e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "action", Value: "read_order_message"})
			time.Sleep(readBackoff)
			continue
		}

		if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "action", Value: "commit_order_message"})
		}

		e.state.Lock()
		if err == nil {
			// rejected orders are consumed like accepted ones
			if err := e.processOrder(e.ctx, &request); err != nil {
				e.logger.WarnContext(e.ctx, "Order rejected",
					logger.Field{Key: "orderOffset", Value: request.Offset},
					logger.Field{Key: "traderID", Value: request.TraderID},
					logger.Field{Key: "reason", Value: err.Error()},
				)
			}
		} else {
			e.logger.WarnContext(e.ctx, "Malformed order skipped", logger.Field{Key: "orderOffset", Value: msg.Offset})
		}
		e.setOrderOffset(msg.Offset)
		e.state.Unlock()
	}
}

// processOrder routes a request to the trader it names.
func (e *Engine) processOrder(ctx context.Context, request *orderreaderv1.PlaceOrderRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	ctx = util.WithSymbol(util.WithRequestID(ctx, ""), request.Symbol)
	e.logger.DebugContext(ctx, "Processing order",
		logger.Field{Key: "orderOffset", Value: request.Offset},
		logger.Field{Key: "traderID", Value: request.TraderID},
		logger.Field{Key: "type", Value: request.Type},
	)

	participant := e.directory.GetOrCreate(request.TraderID)

	if request.Type == orderreaderv1.OrderTypeBank {
		return participant.BuyFromBank(ctx, request.Symbol, request.Size)
	}

	side, err := orderbookv1.ParseSide(request.Side)
	if err != nil {
		return err
	}

	switch request.Type {
	case orderreaderv1.OrderTypeMarket:
		_, err = participant.PlaceMarketOrder(ctx, request.Symbol, request.Size, side)
	default:
		_, err = participant.PlaceOrder(ctx, request.Symbol, request.Size, request.Price, side)
	}
	return err
}

// runMatcher runs a matching pass every match interval.
func (e *Engine) runMatcher() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.matchInterval)
	defer ticker.Stop()

	e.logger.Info("Starting matcher")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Matcher shutting down")
			return
		case <-ticker.C:
			e.runMatchingPass(e.ctx)
		}
	}
}

// runMatchingPass runs one pass over the market and updates the statistics.
func (e *Engine) runMatchingPass(ctx context.Context) orderbookv1.PassReport {
	e.state.Lock()
	report := e.market.Trade(ctx)
	e.state.Unlock()

	e.statsMutex.Lock()
	e.totalPasses++
	e.totalCrossings += int64(len(report.Crossings))
	e.statsMutex.Unlock()

	return report
}

// runSnapshotManager handles periodic snapshots
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				_ = e.createAndStoreSnapshot(e.ctx)
			}
		}
	}
}

// shouldCreateSnapshot checks if a snapshot should be created
func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset < 0 {
		return false
	}

	delta := currentOffset - lastSnapshotOffset
	return delta >= e.snapshotOffsetDelta
}

// createSnapshot captures the book, the traders and the instrument prices at
// the current order offset.
func (e *Engine) createSnapshot() *snapshotv1.Snapshot {
	e.state.Lock()
	defer e.state.Unlock()

	instruments := e.market.Registry().Instruments()
	instrumentSnapshots := make([]snapshotv1.InstrumentSnapshot, 0, len(instruments))
	for _, instrument := range instruments {
		instrumentSnapshots = append(instrumentSnapshots, snapshotv1.InstrumentSnapshot{
			Symbol: instrument.Symbol,
			Price:  instrument.Price,
		})
	}

	return &snapshotv1.Snapshot{
		OrderOffset:       e.getOrderOffset(),
		OrderBookSnapshot: *e.market.Book().CreateSnapshot(),
		Traders:           e.directory.Snapshot(),
		Instruments:       instrumentSnapshots,
	}
}

// createAndStoreSnapshot creates and stores a snapshot
func (e *Engine) createAndStoreSnapshot(ctx context.Context) error {
	snapshot := e.createSnapshot()

	e.logger.Info("Creating snapshot", logger.Field{Key: "currentOffset", Value: snapshot.OrderOffset})

	if err := e.snapshotStore.Store(ctx, snapshot); err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "store_snapshot"})
		return err
	}

	e.setLastSnapshotOffset(snapshot.OrderOffset)
	e.logger.Info("Snapshot stored successfully",
		logger.Field{Key: "offset", Value: snapshot.OrderOffset},
		logger.Field{Key: "orders", Value: len(snapshot.OrderBookSnapshot.Orders)},
		logger.Field{Key: "traders", Value: len(snapshot.Traders)},
	)
	return nil
}

// Thread-safe getters and setters
func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) getLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// loadSnapshot restores instrument prices, then traders, then the book, whose
// orders are re-attached to the restored traders.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.LoadStore(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	registry := e.market.Registry()
	for _, instrument := range snapshot.Instruments {
		if err := registry.SetPrice(instrument.Symbol, instrument.Price); err != nil {
			e.logger.Warn("Snapshot instrument is not listed, skipped",
				logger.Field{Key: "symbol", Value: instrument.Symbol},
			)
		}
	}

	e.directory.Restore(snapshot.Traders)

	if err := e.market.Book().Restore(&snapshot.OrderBookSnapshot, e.directory.Resolve); err != nil {
		return err
	}

	e.mu.Lock()
	e.orderOffset = snapshot.OrderOffset
	e.lastSnapshotOffset = snapshot.OrderOffset
	e.mu.Unlock()

	e.logger.Info("Market restored from snapshot",
		logger.Field{Key: "orderOffset", Value: snapshot.OrderOffset},
		logger.Field{Key: "orders", Value: len(snapshot.OrderBookSnapshot.Orders)},
		logger.Field{Key: "traders", Value: len(snapshot.Traders)},
	)

	return nil
}

// GetOrderOffset returns the current order offset
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetLastSnapshotOffset returns the last snapshot offset
func (e *Engine) GetLastSnapshotOffset() int64 {
	return e.getLastSnapshotOffset()
}

// GetTotalPasses returns the number of matching passes run.
func (e *Engine) GetTotalPasses() int64 {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()
	return e.totalPasses
}

// GetTotalCrossings returns the number of crossings found over every pass.
func (e *Engine) GetTotalCrossings() int64 {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()
	return e.totalCrossings
}
