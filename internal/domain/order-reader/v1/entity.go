package orderreaderv1

import (
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeMarket represents a marketable order, its price is ignored.
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeBank represents a purchase straight from the bank at the instrument price.
	OrderTypeBank OrderType = "bank"
)

// PlaceOrderRequest represents a request of a trader read from the order stream.
type PlaceOrderRequest struct {
	TraderID string          `json:"traderID"`
	Symbol   string          `json:"symbol"`
	Type     OrderType       `json:"type"`
	Side     string          `json:"side"`
	Size     int64           `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Offset   int64           `json:"-"` // Offset for the order in the stream
}

// Validate checks the request is well formed.
func (r *PlaceOrderRequest) Validate() error {
	baseErr := errors.NewBaseError()

	if r.TraderID == "" {
		baseErr.AddErrorDetails(errors.NewErrorDetails("trader id is required", string(errors.ErrInvalidOrder), "traderID"))
	}
	if r.Symbol == "" {
		baseErr.AddErrorDetails(errors.NewErrorDetails("symbol is required", string(errors.ErrInvalidOrder), "symbol"))
	}
	if r.Size <= 0 {
		baseErr.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("size must be positive, got %d", r.Size), string(errors.ErrInvalidOrder), "size"))
	}

	switch r.Type {
	case OrderTypeBank:
	case OrderTypeMarket, OrderTypeLimit:
		if _, err := orderbookv1.ParseSide(r.Side); err != nil {
			baseErr.AddErrorDetails(errors.NewErrorDetails(err.Error(), string(errors.ErrInvalidOrder), "side"))
		}
		if r.Type == OrderTypeLimit && !r.Price.IsPositive() {
			baseErr.AddErrorDetails(errors.NewErrorDetails("limit price must be positive", string(errors.ErrInvalidOrder), "price"))
		}
	default:
		baseErr.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("unknown order type %q", r.Type), string(errors.ErrInvalidOrder), "type"))
	}

	if baseErr.HasDetails() {
		return baseErr
	}
	return nil
}
