package pricepublisherv1

import (
	"context"

	"github.com/shopspring/decimal"
)

// PricePublisher records the new clearing price of a symbol.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=pricepublisherv1_mock
type PricePublisher interface {
	PublishPrice(ctx context.Context, symbol string, price decimal.Decimal) error
}

// PriceSource looks up the last clearing price recorded for a symbol.
type PriceSource interface {
	// LastPrice returns the last recorded price, ok is false when none was recorded.
	LastPrice(ctx context.Context, symbol string) (price decimal.Decimal, ok bool, err error)
}
