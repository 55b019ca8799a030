// Package scoring converts per-asset metrics into a ranked, weighted
// portfolio selection according to the client's risk tolerance.
package scoring

import "errors"

// MaxPortfolioSize is the maximum number of assets selected into a portfolio.
const MaxPortfolioSize = 10

// Selection failures. Both are surfaced to clients as a generic 500; the
// detail stays in the logs.
var (
	ErrNoEligibleAssets = errors.New("no eligible assets")
	ErrDegenerateScores = errors.New("degenerate scores")
)

// Tolerance is the client-supplied risk tolerance. It deliberately keeps the
// raw value: each lookup table applies its own documented default for
// unrecognized values (score weights fall back to low, projection rates to
// medium), so there is no single normalization point.
type Tolerance string

// Recognized tolerance values
const (
	ToleranceLow    Tolerance = "low"
	ToleranceMedium Tolerance = "medium"
	ToleranceHigh   Tolerance = "high"
)

// scoreWeights is the return/risk blend applied to normalized scores.
type scoreWeights struct {
	ret  float64
	risk float64
}

// weightsFor returns the blend for a tolerance. Any unrecognized value gets
// the low-tolerance blend.
func weightsFor(t Tolerance) scoreWeights {
	switch t {
	case ToleranceHigh:
		return scoreWeights{ret: 0.8, risk: 0.2}
	case ToleranceMedium:
		return scoreWeights{ret: 0.5, risk: 0.5}
	default:
		return scoreWeights{ret: 0.2, risk: 0.8}
	}
}

// ScoredAsset is one selected asset with its metrics, normalized scores,
// portfolio weight and dollar allocation.
type ScoredAsset struct {
	Name             string  `json:"name"`
	ExpectedReturn   float64 `json:"expected_return"`
	Volatility       float64 `json:"volatility"`
	Sharpe           float64 `json:"sharpe"`
	ReturnScore      float64 `json:"return_score"`
	RiskScore        float64 `json:"risk_score"`
	FinalScore       float64 `json:"final_score"`
	Weight           float64 `json:"weight"`
	InvestmentAmount float64 `json:"investment_amount"`
}

// Portfolio is an ordered selection of up to MaxPortfolioSize assets,
// sorted by final score descending. Weights sum to 1 over the selection.
type Portfolio []ScoredAsset
