package instrumentv1

import "github.com/shopspring/decimal"

// Registry looks up tradable instruments.
type Registry interface {
	// LookupInstrument returns the instrument for symbol, ok is false when it is not listed.
	LookupInstrument(symbol string) (instrument Instrument, ok bool)
	// SetPrice updates the current price of a listed instrument.
	SetPrice(symbol string, price decimal.Decimal) error
	// Instruments returns every listed instrument ordered by symbol.
	Instruments() []Instrument
}
