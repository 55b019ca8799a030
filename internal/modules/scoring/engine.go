package scoring

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/metrics"
)

// Engine ranks assets by a risk-tolerance-weighted blend of normalized
// return and risk scores and converts the top selection into investment
// weights. The whole computation is a deterministic single pass over the
// asset universe.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new scoring engine
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "scoring").Logger(),
	}
}

// Select builds a portfolio for the given metrics, tolerance, and total
// investment. The universe slice fixes the iteration order: ties in final
// score keep universe order, so identical inputs always produce identical
// portfolios.
//
// Returns ErrNoEligibleAssets when no asset has fully defined metrics, and
// ErrDegenerateScores when every selected final score is zero (flat
// universe) and weights cannot be formed.
func (e *Engine) Select(universe []string, m map[string]metrics.AssetMetrics, tolerance Tolerance, totalInvestment float64) (Portfolio, error) {
	eligible := make([]ScoredAsset, 0, len(universe))
	for _, name := range universe {
		am, ok := m[name]
		if !ok || !defined(am) {
			continue
		}
		eligible = append(eligible, ScoredAsset{
			Name:           name,
			ExpectedReturn: am.ExpectedReturn,
			Volatility:     am.Volatility,
			Sharpe:         am.Sharpe,
		})
	}

	if len(eligible) == 0 {
		return nil, ErrNoEligibleAssets
	}

	normalizeScores(eligible)

	w := weightsFor(tolerance)
	for i := range eligible {
		eligible[i].FinalScore = w.ret*eligible[i].ReturnScore + w.risk*eligible[i].RiskScore
	}

	// Stable sort keeps universe order for equal final scores.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].FinalScore > eligible[j].FinalScore
	})

	selected := eligible
	if len(selected) > MaxPortfolioSize {
		selected = selected[:MaxPortfolioSize]
	}

	var scoreSum float64
	for _, a := range selected {
		scoreSum += a.FinalScore
	}
	if scoreSum == 0 || math.IsNaN(scoreSum) || math.IsInf(scoreSum, 0) {
		e.log.Warn().
			Int("selected", len(selected)).
			Float64("score_sum", scoreSum).
			Msg("Selection produced degenerate scores")
		return nil, ErrDegenerateScores
	}

	portfolio := make(Portfolio, len(selected))
	for i, a := range selected {
		a.Weight = a.FinalScore / scoreSum
		a.InvestmentAmount = a.Weight * totalInvestment
		portfolio[i] = a
	}

	e.log.Debug().
		Int("eligible", len(eligible)).
		Int("selected", len(portfolio)).
		Str("tolerance", string(tolerance)).
		Msg("Portfolio selected")

	return portfolio, nil
}

// defined reports whether all metrics are usable numbers.
func defined(m metrics.AssetMetrics) bool {
	return !math.IsNaN(m.ExpectedReturn) && !math.IsInf(m.ExpectedReturn, 0) &&
		!math.IsNaN(m.Volatility) && !math.IsInf(m.Volatility, 0) &&
		!math.IsNaN(m.Sharpe) && !math.IsInf(m.Sharpe, 0)
}

// normalizeScores min-max normalizes return and inverted risk scores over
// the eligible set. When the universe is flat (max == min) the score is
// defined as 0 for every asset rather than dividing by zero.
func normalizeScores(assets []ScoredAsset) {
	retMin, retMax := assets[0].ExpectedReturn, assets[0].ExpectedReturn
	riskMin, riskMax := assets[0].Volatility, assets[0].Volatility
	for _, a := range assets[1:] {
		retMin = math.Min(retMin, a.ExpectedReturn)
		retMax = math.Max(retMax, a.ExpectedReturn)
		riskMin = math.Min(riskMin, a.Volatility)
		riskMax = math.Max(riskMax, a.Volatility)
	}

	retRange := retMax - retMin
	riskRange := riskMax - riskMin

	for i := range assets {
		if retRange > 0 {
			assets[i].ReturnScore = (assets[i].ExpectedReturn - retMin) / retRange
		}
		if riskRange > 0 {
			// Lower volatility earns the higher score.
			assets[i].RiskScore = (riskMax - assets[i].Volatility) / riskRange
		}
	}
}
