package orderbookv1

import "github.com/shopspring/decimal"

// Crossing is the outcome of the crossing search for one symbol.
// BuyIndex and SellIndex point into the priority ordered sequences.
type Crossing struct {
	Symbol        string          `json:"symbol"`
	BuyIndex      int             `json:"buyIndex"`
	SellIndex     int             `json:"sellIndex"`
	ClearingPrice decimal.Decimal `json:"clearingPrice"`
	MatchedVolume int64           `json:"matchedVolume"`
}

// NoCrossing returns the "no match" result, every output set to -1.
func NoCrossing(symbol string) Crossing {
	return Crossing{
		Symbol:        symbol,
		BuyIndex:      -1,
		SellIndex:     -1,
		ClearingPrice: decimal.NewFromInt(-1),
		MatchedVolume: -1,
	}
}

// Found reports whether the search produced a viable crossing.
func (c Crossing) Found() bool {
	return c.BuyIndex >= 0 && c.SellIndex >= 0 && !c.ClearingPrice.IsNegative()
}
