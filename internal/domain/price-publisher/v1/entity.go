package pricepublisherv1

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadchandra19/stockmarket/pkg/util"
	"github.com/shopspring/decimal"
)

// PriceEvent is a clearing price published for a symbol after a matching pass.
type PriceEvent struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	PassID    string          `json:"passID"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewPriceEvent creates a price event stamped with the pass id carried by ctx.
func NewPriceEvent(ctx context.Context, symbol string, price decimal.Decimal) *PriceEvent {
	return &PriceEvent{
		Symbol:    symbol,
		Price:     price,
		PassID:    util.GetRequestID(ctx),
		Timestamp: time.Now().UTC(),
	}
}

// ToBytes converts the price event to a byte array.
func (e *PriceEvent) ToBytes() ([]byte, error) {
	return json.Marshal(e)
}

// FromBytes converts a byte array to a price event.
func FromBytes(data []byte) (*PriceEvent, error) {
	var event PriceEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
