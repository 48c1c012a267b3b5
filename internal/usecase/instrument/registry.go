package instrument

import (
	"fmt"
	"sort"
	"sync"
	"time"

	instrumentv1 "github.com/muhammadchandra19/stockmarket/internal/domain/instrument/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/shopspring/decimal"
)

var _ instrumentv1.Registry = (*Registry)(nil)

// Registry is an in-memory list of tradable instruments.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]instrumentv1.Instrument
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		instruments: make(map[string]instrumentv1.Instrument),
	}
}

// List adds or replaces an instrument.
func (r *Registry) List(symbol string, price decimal.Decimal) error {
	if symbol == "" {
		return errors.NewErrorDetails("symbol cannot be empty", string(errors.ErrUnknownInstrument), "symbol")
	}
	if price.IsNegative() {
		return errors.NewErrorDetails(fmt.Sprintf("price of %s cannot be negative", symbol), string(errors.ErrInvalidOrder), "price")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.instruments[symbol] = instrumentv1.Instrument{
		Symbol:    symbol,
		Price:     price,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// LookupInstrument returns the instrument listed under symbol.
func (r *Registry) LookupInstrument(symbol string) (instrumentv1.Instrument, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instrument, ok := r.instruments[symbol]
	return instrument, ok
}

// SetPrice updates the current price of a listed instrument.
func (r *Registry) SetPrice(symbol string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instrument, ok := r.instruments[symbol]
	if !ok {
		return errors.NewErrorDetails(fmt.Sprintf("instrument %s is not listed", symbol), string(errors.ErrUnknownInstrument), "symbol")
	}

	instrument.Price = price
	instrument.UpdatedAt = time.Now().UTC()
	r.instruments[symbol] = instrument
	return nil
}

// Instruments returns every listed instrument ordered by symbol.
func (r *Registry) Instruments() []instrumentv1.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instruments := make([]instrumentv1.Instrument, 0, len(r.instruments))
	for _, instrument := range r.instruments {
		instruments = append(instruments, instrument)
	}
	sort.Slice(instruments, func(i, j int) bool {
		return instruments[i].Symbol < instruments[j].Symbol
	})
	return instruments
}
