package trader

import (
	"context"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/orderbook"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_GetOrCreate(t *testing.T) {
	directory := NewDirectory(newTestRegistry(t), nil, dec("250"), logger.NewNopLogger())

	_, ok := directory.Get("alice")
	assert.False(t, ok)

	alice := directory.GetOrCreate("alice")
	assert.Same(t, alice, directory.GetOrCreate("alice"))
	assert.True(t, alice.Cash().Equal(dec("250")))

	got, ok := directory.Get("alice")
	require.True(t, ok)
	assert.Same(t, alice, got)
}

func TestDirectory_SnapshotRestore(t *testing.T) {
	log := logger.NewNopLogger()
	registry := newTestRegistry(t)
	book := orderbook.NewBook(log)
	directory := NewDirectory(registry, book, dec("1000"), log)

	alice := directory.GetOrCreate("alice")
	require.NoError(t, alice.BuyFromBank(context.Background(), "Y", 10))
	_, err := alice.PlaceOrder(context.Background(), "Y", 4, dec("12"), orderbookv1.SideSell)
	require.NoError(t, err)
	directory.GetOrCreate("bob")

	traders := directory.Snapshot()
	require.Len(t, traders, 2)
	assert.Equal(t, "alice", traders[0].ID)
	assert.Equal(t, int64(10), traders[0].Positions["Y"])
	orders := book.CreateSnapshot()

	restoredBook := orderbook.NewBook(log)
	restored := NewDirectory(registry, restoredBook, dec("1000"), log)
	restored.Restore(traders)
	require.NoError(t, restoredBook.Restore(orders, restored.Resolve))

	alice, ok := restored.Get("alice")
	require.True(t, ok)
	assert.True(t, alice.Cash().Equal(dec("900")))
	assert.Equal(t, int64(10), alice.Position("Y"))

	open, ok := alice.OpenOrder("Y")
	require.True(t, ok)
	assert.Equal(t, alice, open.Owner)
	assert.Equal(t, int64(4), open.Size)

	_, err = alice.PlaceOrder(context.Background(), "Y", 1, dec("12"), orderbookv1.SideSell)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrDuplicateOrder))
}

func TestDirectory_Resolve_NoOwner(t *testing.T) {
	directory := NewDirectory(newTestRegistry(t), nil, dec("1"), logger.NewNopLogger())

	_, err := directory.Resolve(&orderbookv1.Order{ID: "o1", Symbol: "X"})
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnknownParticipant))
}
