package instrumentv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is a tradable stock and its current price.
type Instrument struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
