package engine

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	orderreaderv1 "github.com/muhammadchandra19/stockmarket/internal/domain/order-reader/v1"
	orderreadermock "github.com/muhammadchandra19/stockmarket/internal/domain/order-reader/v1/mock"
	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
	snapshotmock "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1/mock"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/instrument"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/market"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/orderbook"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/trader"
	"github.com/muhammadchandra19/stockmarket/pkg/config"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures and helpers
type testFixture struct {
	ctrl              *gomock.Controller
	mockOrderReader   *orderreadermock.MockOrderReader
	mockSnapshotStore *snapshotmock.MockStore
	registry          *instrument.Registry
	book              *orderbook.Book
	market            *market.Market
	directory         *trader.Directory
	logger            *logger.Logger
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)
	log := logger.NewNopLogger()

	registry := instrument.NewRegistry()
	require.NoError(t, registry.List("X", decimal.NewFromInt(100)))
	require.NoError(t, registry.List("Y", decimal.NewFromInt(10)))

	book := orderbook.NewBook(log)

	return &testFixture{
		ctrl:              ctrl,
		mockOrderReader:   orderreadermock.NewMockOrderReader(ctrl),
		mockSnapshotStore: snapshotmock.NewMockStore(ctrl),
		registry:          registry,
		book:              book,
		market:            market.NewMarket(registry, book, nil, log),
		directory:         trader.NewDirectory(registry, book, decimal.NewFromInt(1000), log),
		logger:            log,
	}
}

func (f *testFixture) teardown() {
	f.ctrl.Finish()
}

func createTestOrderRequest(traderID string, orderType orderreaderv1.OrderType, side string, size int64, price string, offset int64) orderreaderv1.PlaceOrderRequest {
	return orderreaderv1.PlaceOrderRequest{
		TraderID: traderID,
		Symbol:   "X",
		Type:     orderType,
		Side:     side,
		Size:     size,
		Price:    decimal.RequireFromString(price),
		Offset:   offset,
	}
}

// createTestEngine builds an engine over an empty snapshot store.
func createTestEngine(t *testing.T, fixture *testFixture, options *Options) *Engine {
	fixture.mockSnapshotStore.EXPECT().LoadStore(gomock.Any()).Return(nil, nil)

	engine, err := NewEngineWithOptions(
		fixture.market,
		fixture.directory,
		fixture.mockOrderReader,
		fixture.mockSnapshotStore,
		fixture.logger,
		options,
	)
	require.NoError(t, err)
	return engine
}

func createTestSnapshot() *snapshotv1.Snapshot {
	return &snapshotv1.Snapshot{
		OrderOffset: 100,
		OrderBookSnapshot: snapshotv1.OrderBookSnapshot{
			Orders: []snapshotv1.BookOrder{
				{OrderID: "b1", OwnerID: "alice", Symbol: "X", Side: "buy", Size: 10, Price: decimal.NewFromInt(100), Timestamp: 1},
				{OrderID: "s1", OwnerID: "bob", Symbol: "X", Side: "sell", Size: 8, Price: decimal.NewFromInt(90), Timestamp: 2},
			},
		},
		Traders: []snapshotv1.TraderSnapshot{
			{ID: "alice", Cash: decimal.NewFromInt(1000), Positions: map[string]int64{}},
			{ID: "bob", Cash: decimal.NewFromInt(200), Positions: map[string]int64{"X": 8}},
		},
		Instruments: []snapshotv1.InstrumentSnapshot{
			{Symbol: "X", Price: decimal.NewFromInt(95)},
			{Symbol: "DELISTED", Price: decimal.NewFromInt(1)},
		},
	}
}

func TestNewEngine(t *testing.T) {
	testCases := []struct {
		name                string
		snapshot            *snapshotv1.Snapshot
		loadErr             error
		expectedOrderOffset int64
		expectedError       bool
	}{
		{
			name:                "successful engine creation with nil snapshot",
			expectedOrderOffset: -1,
		},
		{
			name:                "successful engine creation with existing snapshot",
			snapshot:            createTestSnapshot(),
			expectedOrderOffset: 100,
		},
		{
			name:          "snapshot store failure",
			loadErr:       assert.AnError,
			expectedError: true,
		},
		{
			name: "snapshot with a malformed order",
			snapshot: &snapshotv1.Snapshot{
				OrderOffset: 3,
				OrderBookSnapshot: snapshotv1.OrderBookSnapshot{
					Orders: []snapshotv1.BookOrder{{OrderID: "b1", OwnerID: "alice", Symbol: "X", Side: "hold", Size: 1}},
				},
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			fixture.mockSnapshotStore.EXPECT().LoadStore(gomock.Any()).Return(tc.snapshot, tc.loadErr)

			engine, err := NewEngine(
				fixture.market,
				fixture.directory,
				fixture.mockOrderReader,
				fixture.mockSnapshotStore,
				fixture.logger,
			)
			if tc.expectedError {
				assert.Error(t, err)
				assert.Nil(t, engine)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedOrderOffset, engine.GetOrderOffset())
			assert.Equal(t, tc.expectedOrderOffset, engine.GetLastSnapshotOffset())
			assert.Equal(t, DefaultEngineOptions().MatchInterval, engine.matchInterval)
		})
	}
}

func TestNewEngine_RestoresMarket(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.mockSnapshotStore.EXPECT().LoadStore(gomock.Any()).Return(createTestSnapshot(), nil)

	_, err := NewEngine(fixture.market, fixture.directory, fixture.mockOrderReader, fixture.mockSnapshotStore, fixture.logger)
	require.NoError(t, err)

	instrument, ok := fixture.registry.LookupInstrument("X")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(95).Equal(instrument.Price))

	bob, ok := fixture.directory.Get("bob")
	require.True(t, ok)
	assert.Equal(t, int64(8), bob.Position("X"))
	assert.True(t, decimal.NewFromInt(200).Equal(bob.Cash()))

	open, ok := bob.OpenOrder("X")
	require.True(t, ok)
	assert.Equal(t, "s1", open.ID)

	buys := fixture.book.Inspect("X", orderbookv1.SideBuy)
	require.Len(t, buys, 1)
	assert.Equal(t, "b1", buys[0].ID)
	assert.NotNil(t, buys[0].Owner)

	// restored orders settle with their owners
	report := fixture.market.Trade(context.Background())
	require.Len(t, report.Crossings, 1)
	assert.False(t, report.HasFailures())
	assert.Equal(t, int64(0), bob.Position("X"))
	assert.True(t, decimal.NewFromInt(920).Equal(bob.Cash()), "bob cash %s", bob.Cash())
}

func TestNewEngineWithOptions(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	options := &Options{
		MatchInterval:       250 * time.Millisecond,
		SnapshotInterval:    10 * time.Second,
		SnapshotOffsetDelta: 500,
	}
	engine := createTestEngine(t, fixture, options)

	assert.Equal(t, 250*time.Millisecond, engine.matchInterval)
	assert.Equal(t, 10*time.Second, engine.snapshotInterval)
	assert.Equal(t, int64(500), engine.snapshotOffsetDelta)
}

func TestOptionsFromConfig(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      config.EngineConfig
		expected *Options
	}{
		{
			name:     "unset values fall back to defaults",
			expected: DefaultEngineOptions(),
		},
		{
			name: "configured values",
			cfg: config.EngineConfig{
				MatchInterval:       250 * time.Millisecond,
				SnapshotInterval:    time.Minute,
				SnapshotOffsetDelta: 10,
			},
			expected: &Options{
				MatchInterval:       250 * time.Millisecond,
				SnapshotInterval:    time.Minute,
				SnapshotOffsetDelta: 10,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OptionsFromConfig(tc.cfg))
		})
	}
}

func TestEngine_processOrder(t *testing.T) {
	testCases := []struct {
		name          string
		setup         func(t *testing.T, e *Engine)
		request       orderreaderv1.PlaceOrderRequest
		expectedCode  errors.ErrorCode
		expectedBuys  int
		expectedSells int
		verify        func(t *testing.T, f *testFixture)
	}{
		{
			name:    "bank purchase",
			request: createTestOrderRequest("alice", orderreaderv1.OrderTypeBank, "", 5, "0", 1),
			verify: func(t *testing.T, f *testFixture) {
				alice, ok := f.directory.Get("alice")
				require.True(t, ok)
				assert.Equal(t, int64(5), alice.Position("X"))
				assert.True(t, decimal.NewFromInt(500).Equal(alice.Cash()))
			},
		},
		{
			name:         "limit buy",
			request:      createTestOrderRequest("alice", orderreaderv1.OrderTypeLimit, "buy", 5, "99", 1),
			expectedBuys: 1,
		},
		{
			name: "market sell",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.processOrder(context.Background(), &orderreaderv1.PlaceOrderRequest{
					TraderID: "bob", Symbol: "X", Type: orderreaderv1.OrderTypeBank, Size: 3,
				}))
			},
			request:       createTestOrderRequest("bob", orderreaderv1.OrderTypeMarket, "ask", 3, "0", 2),
			expectedSells: 1,
			verify: func(t *testing.T, f *testFixture) {
				sells := f.book.Inspect("X", orderbookv1.SideSell)
				require.Len(t, sells, 1)
				assert.True(t, sells[0].IsMarketable())
			},
		},
		{
			name:         "insufficient funds",
			request:      createTestOrderRequest("alice", orderreaderv1.OrderTypeLimit, "buy", 11, "100", 1),
			expectedCode: errors.ErrInsufficientFunds,
		},
		{
			name:         "sell without holding",
			request:      createTestOrderRequest("alice", orderreaderv1.OrderTypeLimit, "sell", 1, "100", 1),
			expectedCode: errors.ErrUnheldInstrument,
		},
		{
			name: "second order on the same symbol",
			setup: func(t *testing.T, e *Engine) {
				request := createTestOrderRequest("alice", orderreaderv1.OrderTypeLimit, "buy", 1, "100", 1)
				require.NoError(t, e.processOrder(context.Background(), &request))
			},
			request:      createTestOrderRequest("alice", orderreaderv1.OrderTypeLimit, "buy", 1, "100", 2),
			expectedCode: errors.ErrDuplicateOrder,
			expectedBuys: 1,
		},
		{
			name:         "unknown instrument",
			request:      orderreaderv1.PlaceOrderRequest{TraderID: "alice", Symbol: "Z", Type: orderreaderv1.OrderTypeBank, Size: 1},
			expectedCode: errors.ErrUnknownInstrument,
		},
		{
			name:         "malformed request",
			request:      createTestOrderRequest("", orderreaderv1.OrderTypeLimit, "buy", 0, "100", 1),
			expectedCode: errors.ErrInvalidOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			engine := createTestEngine(t, fixture, DefaultEngineOptions())
			if tc.setup != nil {
				tc.setup(t, engine)
			}

			err := engine.processOrder(context.Background(), &tc.request)
			if tc.expectedCode != "" {
				require.Error(t, err)
				var baseErr *errors.BaseError
				if asBase, ok := err.(*errors.BaseError); ok {
					baseErr = asBase
					assert.True(t, baseErr.IsAnyCodeEqual(tc.expectedCode), "got %v", err)
				} else {
					assert.True(t, errors.ErrorCodeEquals(err, tc.expectedCode), "got %v", err)
				}
			} else {
				require.NoError(t, err)
			}

			assert.Len(t, fixture.book.Inspect("X", orderbookv1.SideBuy), tc.expectedBuys)
			assert.Len(t, fixture.book.Inspect("X", orderbookv1.SideSell), tc.expectedSells)
			if tc.verify != nil {
				tc.verify(t, fixture)
			}
		})
	}
}

func TestEngine_runMatchingPass(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := createTestEngine(t, fixture, DefaultEngineOptions())
	ctx := context.Background()

	requests := []orderreaderv1.PlaceOrderRequest{
		{TraderID: "bob", Symbol: "X", Type: orderreaderv1.OrderTypeBank, Size: 8},
		createTestOrderRequest("bob", orderreaderv1.OrderTypeLimit, "sell", 8, "90", 2),
		createTestOrderRequest("alice", orderreaderv1.OrderTypeLimit, "buy", 10, "100", 3),
	}
	for i := range requests {
		require.NoError(t, engine.processOrder(ctx, &requests[i]))
	}

	report := engine.runMatchingPass(ctx)
	require.Len(t, report.Crossings, 1)
	assert.True(t, decimal.NewFromInt(90).Equal(report.Crossings[0].ClearingPrice))

	// the remaining buy has nothing to cross
	engine.runMatchingPass(ctx)

	assert.Equal(t, int64(2), engine.GetTotalPasses())
	assert.Equal(t, int64(1), engine.GetTotalCrossings())

	instrument, _ := fixture.registry.LookupInstrument("X")
	assert.True(t, decimal.NewFromInt(90).Equal(instrument.Price))
}

func TestEngine_shouldCreateSnapshot(t *testing.T) {
	testCases := []struct {
		name               string
		orderOffset        int64
		lastSnapshotOffset int64
		expected           bool
	}{
		{name: "nothing processed", orderOffset: -1, lastSnapshotOffset: -1, expected: false},
		{name: "below delta", orderOffset: 5, lastSnapshotOffset: 0, expected: false},
		{name: "delta reached", orderOffset: 10, lastSnapshotOffset: 0, expected: true},
		{name: "first snapshot", orderOffset: 9, lastSnapshotOffset: -1, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			engine := createTestEngine(t, fixture, &Options{
				MatchInterval:       time.Second,
				SnapshotInterval:    time.Second,
				SnapshotOffsetDelta: 10,
			})
			engine.setOrderOffset(tc.orderOffset)
			engine.setLastSnapshotOffset(tc.lastSnapshotOffset)

			assert.Equal(t, tc.expected, engine.shouldCreateSnapshot())
		})
	}
}

func TestEngine_createAndStoreSnapshot(t *testing.T) {
	testCases := []struct {
		name                       string
		storeErr                   error
		expectedLastSnapshotOffset int64
	}{
		{name: "stored", expectedLastSnapshotOffset: 3},
		{name: "store failure", storeErr: assert.AnError, expectedLastSnapshotOffset: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			engine := createTestEngine(t, fixture, DefaultEngineOptions())
			ctx := context.Background()

			bank := orderreaderv1.PlaceOrderRequest{TraderID: "bob", Symbol: "X", Type: orderreaderv1.OrderTypeBank, Size: 8}
			require.NoError(t, engine.processOrder(ctx, &bank))
			sell := createTestOrderRequest("bob", orderreaderv1.OrderTypeLimit, "sell", 8, "90", 2)
			require.NoError(t, engine.processOrder(ctx, &sell))
			engine.setOrderOffset(3)

			fixture.mockSnapshotStore.EXPECT().Store(ctx, gomock.Any()).DoAndReturn(
				func(_ context.Context, snapshot *snapshotv1.Snapshot) error {
					assert.Equal(t, int64(3), snapshot.OrderOffset)
					require.Len(t, snapshot.OrderBookSnapshot.Orders, 1)
					assert.Equal(t, "bob", snapshot.OrderBookSnapshot.Orders[0].OwnerID)
					require.Len(t, snapshot.Traders, 1)
					assert.Equal(t, map[string]int64{"X": 8}, snapshot.Traders[0].Positions)
					require.Len(t, snapshot.Instruments, 2)
					assert.Equal(t, "X", snapshot.Instruments[0].Symbol)
					return tc.storeErr
				})

			err := engine.createAndStoreSnapshot(ctx)
			assert.ErrorIs(t, err, tc.storeErr)
			assert.Equal(t, tc.expectedLastSnapshotOffset, engine.GetLastSnapshotOffset())
		})
	}
}

func TestEngine_StartStop(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := createTestEngine(t, fixture, &Options{
		MatchInterval:       time.Hour,
		SnapshotInterval:    time.Hour,
		SnapshotOffsetDelta: 1000,
	})

	bank := kafka.Message{Offset: 0}
	malformed := kafka.Message{Offset: 1}
	limit := kafka.Message{Offset: 2}

	fixture.mockOrderReader.EXPECT().SetOffset(kafka.FirstOffset).Return(nil)
	gomock.InOrder(
		fixture.mockOrderReader.EXPECT().ReadMessage(gomock.Any()).Return(bank, orderreaderv1.PlaceOrderRequest{
			TraderID: "bob", Symbol: "X", Type: orderreaderv1.OrderTypeBank, Size: 8, Offset: 0,
		}, nil),
		fixture.mockOrderReader.EXPECT().ReadMessage(gomock.Any()).Return(
			malformed,
			orderreaderv1.PlaceOrderRequest{Offset: 1},
			errors.NewErrorDetails("bad payload", string(errors.ErrInvalidOrder), "payload"),
		),
		fixture.mockOrderReader.EXPECT().ReadMessage(gomock.Any()).Return(
			limit,
			createTestOrderRequest("bob", orderreaderv1.OrderTypeLimit, "sell", 8, "90", 2),
			nil,
		),
		fixture.mockOrderReader.EXPECT().ReadMessage(gomock.Any()).DoAndReturn(
			func(ctx context.Context) (kafka.Message, orderreaderv1.PlaceOrderRequest, error) {
				<-ctx.Done()
				return kafka.Message{}, orderreaderv1.PlaceOrderRequest{}, ctx.Err()
			}),
	)
	fixture.mockOrderReader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	fixture.mockOrderReader.EXPECT().Close().Return(nil)
	fixture.mockSnapshotStore.EXPECT().Store(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, snapshot *snapshotv1.Snapshot) error {
			assert.Equal(t, int64(2), snapshot.OrderOffset)
			assert.Len(t, snapshot.OrderBookSnapshot.Orders, 1)
			return nil
		})

	require.NoError(t, engine.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return engine.GetOrderOffset() == 2
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, engine.Stop(ctx))

	assert.Equal(t, int64(2), engine.GetLastSnapshotOffset())
	assert.Len(t, fixture.book.Inspect("X", orderbookv1.SideSell), 1)
}

func TestEngine_Start_SetOffsetFailure(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.mockSnapshotStore.EXPECT().LoadStore(gomock.Any()).Return(&snapshotv1.Snapshot{OrderOffset: 41}, nil)
	engine, err := NewEngine(fixture.market, fixture.directory, fixture.mockOrderReader, fixture.mockSnapshotStore, fixture.logger)
	require.NoError(t, err)

	fixture.mockOrderReader.EXPECT().SetOffset(int64(42)).Return(assert.AnError)

	assert.ErrorIs(t, engine.Start(context.Background()), assert.AnError)
}

func TestNextOffset(t *testing.T) {
	assert.Equal(t, kafka.FirstOffset, nextOffset(-1))
	assert.Equal(t, int64(1), nextOffset(0))
	assert.Equal(t, int64(42), nextOffset(41))
}
