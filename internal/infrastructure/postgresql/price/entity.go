package price

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is a clearing price recorded for a symbol.
type Price struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	PassID    string          `json:"passID"`
	Timestamp time.Time       `json:"timestamp"`
}
