// Package advisor orchestrates the recommendation pipeline and shapes the
// external response: metrics, scoring, projection, sector labels, and the
// display-only asset-class split.
package advisor

import (
	"github.com/aristath/roboadvisor/internal/modules/projection"
	"github.com/aristath/roboadvisor/internal/modules/scoring"
)

// GenerateRequest is the body of POST /api/generate-portfolio. Amount is a
// pointer so a missing field is distinguishable from zero.
type GenerateRequest struct {
	Amount        *float64 `json:"amount"`
	RiskTolerance string   `json:"riskTolerance"`
}

// Allocation is the display-only stocks/bonds/cash percentage split.
type Allocation struct {
	Stocks int `json:"stocks"`
	Bonds  int `json:"bonds"`
	Cash   int `json:"cash"`
}

// allocationFor returns the split for a tolerance. Unrecognized values get
// the medium split, mirroring the projection defaults.
func allocationFor(t scoring.Tolerance) Allocation {
	switch t {
	case scoring.ToleranceLow:
		return Allocation{Stocks: 30, Bonds: 60, Cash: 10}
	case scoring.ToleranceHigh:
		return Allocation{Stocks: 80, Bonds: 15, Cash: 5}
	default:
		return Allocation{Stocks: 60, Bonds: 30, Cash: 10}
	}
}

// StockRecommendation is one of the top selected assets as presented to the
// client. Percentages are rounded to 2 decimals.
type StockRecommendation struct {
	Name                 string  `json:"name"`
	AllocationPercentage float64 `json:"allocation_percentage"`
	InvestmentAmount     float64 `json:"investment_amount"`
	ExpectedReturn       float64 `json:"expected_return"`
	RiskLevel            float64 `json:"risk_level"`
	Sector               string  `json:"sector"`
}

// Recommendation is the success body of POST /api/generate-portfolio.
type Recommendation struct {
	ID                   string                `json:"id"`
	Allocation           Allocation            `json:"allocation"`
	RiskLevel            string                `json:"riskLevel"`
	InvestmentAmount     float64               `json:"investmentAmount"`
	Predictions          []projection.Point    `json:"predictions"`
	StockRecommendations []StockRecommendation `json:"stockRecommendations"`
	TotalStocks          int                   `json:"totalStocks"`
	AverageReturn        float64               `json:"averageReturn"`
	AverageRisk          float64               `json:"averageRisk"`
}

// StockInfo describes one asset of the universe for GET /api/stocks.
type StockInfo struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}
