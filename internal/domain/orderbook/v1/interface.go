package orderbookv1

import (
	"context"

	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
)

// OwnerResolver rebinds a restored order to the participant that placed it.
type OwnerResolver func(order *Order) (Owner, error)

// Book defines the interface of a call auction order book.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Book interface {
	// Submit appends a well formed order to its symbol and side.
	Submit(order *Order) error
	// RunMatchingPass matches every symbol present on both sides and applies the fills.
	RunMatchingPass(ctx context.Context, publisher pricepublisherv1.PricePublisher) PassReport
	// Inspect returns the resting orders of symbol and side in insertion order.
	Inspect(symbol string, side Side) []*Order
	Symbols() []string
	CreateSnapshot() *snapshotv1.OrderBookSnapshot
	Restore(snapshot *snapshotv1.OrderBookSnapshot, resolve OwnerResolver) error
}
