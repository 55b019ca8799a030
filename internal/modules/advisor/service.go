package advisor

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/internal/modules/metrics"
	"github.com/aristath/roboadvisor/internal/modules/projection"
	"github.com/aristath/roboadvisor/internal/modules/scoring"
)

// topRecommendations is how many selected assets are detailed in the
// response; the portfolio itself may hold up to scoring.MaxPortfolioSize.
const topRecommendations = 5

// Service runs the recommendation pipeline. All per-request state is local;
// the only shared input is the immutable price store, so concurrent requests
// need no synchronization.
type Service struct {
	store      *history.Store
	calculator *metrics.Calculator
	engine     *scoring.Engine
	projector  *projection.Generator
	log        zerolog.Logger
}

// NewService creates a new advisor service
func NewService(
	store *history.Store,
	calculator *metrics.Calculator,
	engine *scoring.Engine,
	projector *projection.Generator,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:      store,
		calculator: calculator,
		engine:     engine,
		projector:  projector,
		log:        log.With().Str("component", "advisor").Logger(),
	}
}

// Generate computes a recommendation for a validated amount and tolerance.
//
// Pipeline errors (unavailable data, no eligible assets, degenerate scores)
// are returned wrapped so the handler can map them to a generic 500 while
// the detail is logged here.
func (s *Service) Generate(amount float64, riskTolerance string) (*Recommendation, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, fmt.Errorf("price data not loaded: %w", err)
	}

	assetMetrics, err := s.calculator.Compute(table)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}

	tolerance := scoring.Tolerance(riskTolerance)
	portfolio, err := s.engine.Select(table.AssetNames(), assetMetrics, tolerance, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}

	recommendations := make([]StockRecommendation, 0, topRecommendations)
	for i, asset := range portfolio {
		if i >= topRecommendations {
			break
		}
		recommendations = append(recommendations, StockRecommendation{
			Name:                 asset.Name,
			AllocationPercentage: round2(asset.Weight * 100),
			InvestmentAmount:     round2(asset.InvestmentAmount),
			ExpectedReturn:       round2(asset.ExpectedReturn * 100),
			RiskLevel:            round2(asset.Volatility * 100),
			Sector:               SectorFor(asset.Name),
		})
	}

	var returnSum, riskSum float64
	for _, asset := range portfolio {
		returnSum += asset.ExpectedReturn
		riskSum += asset.Volatility
	}
	n := float64(len(portfolio))

	rec := &Recommendation{
		ID:                   uuid.New().String(),
		Allocation:           allocationFor(tolerance),
		RiskLevel:            riskTolerance,
		InvestmentAmount:     amount,
		Predictions:          s.projector.Project(amount, tolerance),
		StockRecommendations: recommendations,
		TotalStocks:          len(portfolio),
		AverageReturn:        round2(returnSum / n * 100),
		AverageRisk:          round2(riskSum / n * 100),
	}

	s.log.Info().
		Str("id", rec.ID).
		Float64("amount", amount).
		Str("tolerance", riskTolerance).
		Int("total_stocks", rec.TotalStocks).
		Msg("Generated portfolio recommendation")

	return rec, nil
}

// Universe returns the asset universe with sector labels, in price file
// column order. Empty in degraded mode.
func (s *Service) Universe() []StockInfo {
	table, err := s.store.Table()
	if err != nil {
		return []StockInfo{}
	}

	names := table.AssetNames()
	stocks := make([]StockInfo, 0, len(names))
	for _, name := range names {
		stocks = append(stocks, StockInfo{Name: name, Sector: SectorFor(name)})
	}
	return stocks
}

// round2 rounds to 2 decimal places for percentage display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
