// Package history provides the historical price table the recommendation
// pipeline runs on. The table is loaded once at startup and never mutated,
// so concurrent readers need no locking.
package history

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when price data could not be loaded at startup.
// The service keeps running in degraded mode; callers map this to an error
// response instead of crashing.
var ErrUnavailable = errors.New("price history unavailable")

// PriceTable holds a date-ordered table of historical prices per asset.
// Dates are strictly increasing. Missing prices are stored as NaN.
type PriceTable struct {
	dates  []time.Time
	assets []string
	prices map[string][]float64
}

// newPriceTable builds a table from parsed rows. Assets keeps the source
// column order; every series has exactly len(dates) entries.
func newPriceTable(dates []time.Time, assets []string, prices map[string][]float64) *PriceTable {
	return &PriceTable{
		dates:  dates,
		assets: assets,
		prices: prices,
	}
}

// AssetNames returns the asset display names in source column order.
func (t *PriceTable) AssetNames() []string {
	names := make([]string, len(t.assets))
	copy(names, t.assets)
	return names
}

// Series returns the full chronological price sequence for an asset.
// The second return value is false when the asset is not in the table.
func (t *PriceTable) Series(asset string) ([]float64, bool) {
	series, ok := t.prices[asset]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(series))
	copy(out, series)
	return out, true
}

// HasAsset reports whether the table contains a column for the asset.
func (t *PriceTable) HasAsset(asset string) bool {
	_, ok := t.prices[asset]
	return ok
}

// Len returns the number of date rows.
func (t *PriceTable) Len() int {
	return len(t.dates)
}

// AssetCount returns the number of asset columns.
func (t *PriceTable) AssetCount() int {
	return len(t.assets)
}

// DateRange returns the first and last dates in the table.
func (t *PriceTable) DateRange() (time.Time, time.Time) {
	if len(t.dates) == 0 {
		return time.Time{}, time.Time{}
	}
	return t.dates[0], t.dates[len(t.dates)-1]
}

// Store wraps an optionally-loaded PriceTable. When the startup load failed
// the store is constructed with a nil table and reports unavailable rather
// than crashing the process.
type Store struct {
	table *PriceTable
	log   zerolog.Logger
}

// NewStore creates a store around a loaded table. Pass nil when loading
// failed; the store then serves degraded responses.
func NewStore(table *PriceTable, log zerolog.Logger) *Store {
	return &Store{
		table: table,
		log:   log.With().Str("component", "history").Logger(),
	}
}

// Available reports whether price data was loaded successfully.
func (s *Store) Available() bool {
	return s.table != nil
}

// Table returns the immutable price table, or ErrUnavailable in degraded mode.
func (s *Store) Table() (*PriceTable, error) {
	if s.table == nil {
		return nil, ErrUnavailable
	}
	return s.table, nil
}

// AssetCount returns the number of asset columns, 0 in degraded mode.
func (s *Store) AssetCount() int {
	if s.table == nil {
		return 0
	}
	return s.table.AssetCount()
}
