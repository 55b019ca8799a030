// Package indicators computes per-asset technical indicators from the
// historical price table.
package indicators

import (
	"errors"
	"math"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/internal/modules/metrics"
	"github.com/aristath/roboadvisor/pkg/formulas"
)

// ErrUnknownAsset is returned when the asset is not in the price table.
var ErrUnknownAsset = errors.New("unknown asset")

// Indicator periods
const (
	rsiPeriod      = 14
	smaShortPeriod = 20
	smaLongPeriod  = 50
)

// Summary holds technical indicators for one asset. Pointer fields are nil
// when the series is too short or too sparse for the indicator.
type Summary struct {
	Name       string   `json:"name"`
	RSI14      *float64 `json:"rsi_14"`
	SMA20      *float64 `json:"sma_20"`
	SMA50      *float64 `json:"sma_50"`
	Volatility *float64 `json:"volatility"`
	Sharpe     *float64 `json:"sharpe"`
	DataPoints int      `json:"data_points"`
}

// Service computes indicator summaries from the immutable price store.
type Service struct {
	store *history.Store
	log   zerolog.Logger
}

// NewService creates a new indicators service
func NewService(store *history.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "indicators").Logger(),
	}
}

// Summarize computes indicators for a single asset. Missing prices are
// dropped from the series before indicator calculation; go-talib expects
// contiguous values.
func (s *Service) Summarize(asset string) (*Summary, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	series, ok := table.Series(asset)
	if !ok {
		return nil, ErrUnknownAsset
	}

	closes := make([]float64, 0, len(series))
	for _, p := range series {
		if !math.IsNaN(p) {
			closes = append(closes, p)
		}
	}

	summary := &Summary{
		Name:       asset,
		RSI14:      lastDefined(rsiSeries(closes)),
		SMA20:      lastDefined(smaSeries(closes, smaShortPeriod)),
		SMA50:      lastDefined(smaSeries(closes, smaLongPeriod)),
		DataPoints: len(closes),
	}

	changes := formulas.RelativeChanges(closes)
	vol := formulas.AnnualizedVolatility(changes)
	if !math.IsNaN(vol) {
		summary.Volatility = &vol
	}
	sharpe := formulas.SharpeRatio(formulas.AnnualizedReturn(changes), vol, metrics.RiskFreeRate)
	if !math.IsNaN(sharpe) {
		summary.Sharpe = &sharpe
	}

	return summary, nil
}

// rsiSeries returns the RSI(14) series, nil when too short.
func rsiSeries(closes []float64) []float64 {
	if len(closes) < rsiPeriod+1 {
		return nil
	}
	return talib.Rsi(closes, rsiPeriod)
}

// smaSeries returns the SMA series for a period, nil when too short.
func smaSeries(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nil
	}
	return talib.Sma(closes, period)
}

// lastDefined returns a pointer to the last non-NaN value of a series.
func lastDefined(series []float64) *float64 {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			v := series[i]
			return &v
		}
	}
	return nil
}
