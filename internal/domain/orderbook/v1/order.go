package orderbookv1

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side tells on which side of the book an order rests.
type Side int

const (
	// SideBuy is an intention to buy.
	SideBuy Side = iota
	// SideSell is an intention to sell.
	SideSell
)

// String returns the lower case name of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide converts "buy" or "sell" (case insensitive) into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "bid":
		return SideBuy, nil
	case "sell", "ask":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusResting marks an order still held by the book.
	StatusResting Status = "resting"
	// StatusFilled marks an order removed from the book by a matching pass.
	StatusFilled Status = "filled"
)

// Owner receives fill notifications for the orders it placed.
//
//go:generate mockgen -source order.go -destination=mock/order_mock.go -package=orderbookv1_mock
type Owner interface {
	// NotifyFilled is called after the book adjusted or removed order.
	// order.Size already reflects the adjustment.
	NotifyFilled(order *Order, clearingPrice decimal.Decimal) error
}

// Order represents a single order in the order book.
type Order struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"ownerID"`
	Symbol     string          `json:"symbol"`
	Side       Side            `json:"side"`
	Size       int64           `json:"size"`
	LimitPrice decimal.Decimal `json:"limitPrice"`
	Status     Status          `json:"status"`
	Timestamp  int64           `json:"timestamp"`
	Owner      Owner           `json:"-"`
}

// NewOrder creates a resting order. A zero limitPrice makes it marketable.
func NewOrder(owner Owner, ownerID, symbol string, side Side, size int64, limitPrice decimal.Decimal) *Order {
	return &Order{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Symbol:     symbol,
		Side:       side,
		Size:       size,
		LimitPrice: limitPrice,
		Status:     StatusResting,
		Timestamp:  time.Now().UnixNano(),
		Owner:      owner,
	}
}

// IsBuy checks if the order is a buy order.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell checks if the order is a sell order.
func (o *Order) IsSell() bool {
	return o.Side == SideSell
}

// IsMarketable reports whether the order carries no limit (price 0).
func (o *Order) IsMarketable() bool {
	return o.LimitPrice.IsZero()
}

// IsFilled checks if the order was removed from the book.
func (o *Order) IsFilled() bool {
	return o.Status == StatusFilled
}
