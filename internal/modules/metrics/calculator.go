// Package metrics derives per-asset return, volatility, and Sharpe ratio
// figures from the historical price table.
package metrics

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/pkg/formulas"
)

// RiskFreeRate is the fixed annual risk-free rate used in Sharpe calculations.
const RiskFreeRate = 0.03

// ErrInsufficientData is returned when the price table has fewer than two
// rows; relative changes are undefined for fewer than two points.
var ErrInsufficientData = errors.New("insufficient price data for metrics")

// AssetMetrics holds annualized statistics for a single asset. Any field may
// be NaN when the underlying series does not define it (for example Sharpe
// for a zero-volatility series); such assets are excluded during selection.
type AssetMetrics struct {
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	Sharpe         float64 `json:"sharpe"`
}

// Calculator computes asset metrics from a price table. Computation is pure
// and deterministic, and the table is immutable for the process lifetime, so
// results are cached per table behind a read-mostly lock.
type Calculator struct {
	log zerolog.Logger

	mu       sync.RWMutex
	cacheFor *history.PriceTable
	cache    map[string]AssetMetrics
}

// NewCalculator creates a new metrics calculator
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("component", "metrics").Logger(),
	}
}

// Compute derives metrics for every asset in the table.
//
// Per asset: the day-over-day relative change sequence is built skipping
// steps where either price is missing, then annualized with the 252
// trading-day convention. Assets whose series defines no statistic get NaN
// values rather than being dropped here; eligibility is the selection
// engine's concern.
func (c *Calculator) Compute(table *history.PriceTable) (map[string]AssetMetrics, error) {
	if table == nil || table.Len() < 2 {
		return nil, ErrInsufficientData
	}

	c.mu.RLock()
	if c.cacheFor == table {
		cached := c.cache
		c.mu.RUnlock()
		return cloneMetrics(cached), nil
	}
	c.mu.RUnlock()

	result := make(map[string]AssetMetrics)
	for _, asset := range table.AssetNames() {
		series, ok := table.Series(asset)
		if !ok {
			continue
		}

		changes := formulas.RelativeChanges(series)
		annualReturn := formulas.AnnualizedReturn(changes)
		annualVol := formulas.AnnualizedVolatility(changes)

		result[asset] = AssetMetrics{
			ExpectedReturn: annualReturn,
			Volatility:     annualVol,
			Sharpe:         formulas.SharpeRatio(annualReturn, annualVol, RiskFreeRate),
		}
	}

	c.mu.Lock()
	c.cacheFor = table
	c.cache = result
	c.mu.Unlock()

	c.log.Debug().
		Int("assets", len(result)).
		Msg("Computed asset metrics")

	return cloneMetrics(result), nil
}

// cloneMetrics copies the result map so callers cannot mutate the cache.
func cloneMetrics(in map[string]AssetMetrics) map[string]AssetMetrics {
	out := make(map[string]AssetMetrics, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
