package snapshotv1

import "github.com/shopspring/decimal"

// Snapshot represents the state of the market at a specific order offset.
type Snapshot struct {
	OrderOffset       int64                `json:"orderOffset"`
	OrderBookSnapshot OrderBookSnapshot    `json:"orderBookSnapshot"`
	Traders           []TraderSnapshot     `json:"traders"`
	Instruments       []InstrumentSnapshot `json:"instruments"`
}

// OrderBookSnapshot holds every resting order, per symbol and side in insertion order.
type OrderBookSnapshot struct {
	Orders []BookOrder `json:"orders"`
}

// BookOrder represents an order in the order book with its details.
type BookOrder struct {
	OrderID   string          `json:"orderID"`
	OwnerID   string          `json:"ownerID"`
	Symbol    string          `json:"symbol"`
	Side      string          `json:"side"`
	Size      int64           `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}

// TraderSnapshot holds the bookkeeping of one participant.
type TraderSnapshot struct {
	ID        string           `json:"id"`
	Cash      decimal.Decimal  `json:"cash"`
	Positions map[string]int64 `json:"positions"`
}

// InstrumentSnapshot holds the last known price of an instrument.
type InstrumentSnapshot struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}
