package scoring

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/roboadvisor/internal/modules/metrics"
)

func testMetrics() (universe []string, m map[string]metrics.AssetMetrics) {
	universe = []string{"Growth", "Balanced", "Defensive"}
	m = map[string]metrics.AssetMetrics{
		"Growth":    {ExpectedReturn: 0.30, Volatility: 0.40, Sharpe: (0.30 - 0.03) / 0.40},
		"Balanced":  {ExpectedReturn: 0.15, Volatility: 0.20, Sharpe: (0.15 - 0.03) / 0.20},
		"Defensive": {ExpectedReturn: 0.05, Volatility: 0.10, Sharpe: (0.05 - 0.03) / 0.10},
	}
	return universe, m
}

func TestSelect_WeightsSumToOne(t *testing.T) {
	universe, m := testMetrics()
	engine := NewEngine(zerolog.Nop())

	portfolio, err := engine.Select(universe, m, ToleranceMedium, 1000)
	require.NoError(t, err)
	require.Len(t, portfolio, 3)

	var weightSum, investedSum float64
	for _, a := range portfolio {
		weightSum += a.Weight
		investedSum += a.InvestmentAmount
	}
	assert.InDelta(t, 1.0, weightSum, 1e-9)
	assert.InDelta(t, 1000.0, investedSum, 1e-6)
}

func TestSelect_ScoresWithinUnitInterval(t *testing.T) {
	universe, m := testMetrics()
	engine := NewEngine(zerolog.Nop())

	portfolio, err := engine.Select(universe, m, ToleranceHigh, 1000)
	require.NoError(t, err)

	for _, a := range portfolio {
		assert.GreaterOrEqual(t, a.ReturnScore, 0.0)
		assert.LessOrEqual(t, a.ReturnScore, 1.0)
		assert.GreaterOrEqual(t, a.RiskScore, 0.0)
		assert.LessOrEqual(t, a.RiskScore, 1.0)
	}
}

func TestSelect_ToleranceChangesOrdering(t *testing.T) {
	universe, m := testMetrics()
	engine := NewEngine(zerolog.Nop())

	aggressive, err := engine.Select(universe, m, ToleranceHigh, 1000)
	require.NoError(t, err)
	cautious, err := engine.Select(universe, m, ToleranceLow, 1000)
	require.NoError(t, err)

	assert.Equal(t, "Growth", aggressive[0].Name, "high tolerance favors the high-return asset")
	assert.Equal(t, "Defensive", cautious[0].Name, "low tolerance favors the low-risk asset")
}

func TestSelect_UnrecognizedToleranceDefaultsToLow(t *testing.T) {
	universe, m := testMetrics()
	engine := NewEngine(zerolog.Nop())

	unknown, err := engine.Select(universe, m, Tolerance("yolo"), 1000)
	require.NoError(t, err)
	low, err := engine.Select(universe, m, ToleranceLow, 1000)
	require.NoError(t, err)

	assert.Equal(t, low, unknown)
}

func TestSelect_DropsAssetsWithUndefinedMetrics(t *testing.T) {
	universe := []string{"Good", "Steady", "Flat", "Gappy"}
	m := map[string]metrics.AssetMetrics{
		"Good":   {ExpectedReturn: 0.10, Volatility: 0.20, Sharpe: 0.35},
		"Steady": {ExpectedReturn: 0.06, Volatility: 0.12, Sharpe: 0.25},
		// Zero volatility: Sharpe undefined.
		"Flat": {ExpectedReturn: 0.10, Volatility: 0, Sharpe: math.NaN()},
		// Too sparse: no defined statistics at all.
		"Gappy": {ExpectedReturn: math.NaN(), Volatility: math.NaN(), Sharpe: math.NaN()},
	}

	engine := NewEngine(zerolog.Nop())
	portfolio, err := engine.Select(universe, m, ToleranceMedium, 1000)
	require.NoError(t, err)

	require.Len(t, portfolio, 2)
	names := []string{portfolio[0].Name, portfolio[1].Name}
	assert.ElementsMatch(t, []string{"Good", "Steady"}, names)
	assert.NotContains(t, names, "Flat")
	assert.NotContains(t, names, "Gappy")
}

func TestSelect_SingleEligibleAssetIsDegenerate(t *testing.T) {
	// One eligible asset collapses both min-max ranges to zero, so every
	// score is 0 and weights cannot be formed.
	universe := []string{"Good", "Gappy"}
	m := map[string]metrics.AssetMetrics{
		"Good":  {ExpectedReturn: 0.10, Volatility: 0.20, Sharpe: 0.35},
		"Gappy": {ExpectedReturn: math.NaN(), Volatility: math.NaN(), Sharpe: math.NaN()},
	}

	engine := NewEngine(zerolog.Nop())
	_, err := engine.Select(universe, m, ToleranceMedium, 1000)
	assert.ErrorIs(t, err, ErrDegenerateScores)
}

func TestSelect_NoEligibleAssets(t *testing.T) {
	universe := []string{"Gappy"}
	m := map[string]metrics.AssetMetrics{
		"Gappy": {ExpectedReturn: math.NaN(), Volatility: math.NaN(), Sharpe: math.NaN()},
	}

	engine := NewEngine(zerolog.Nop())
	_, err := engine.Select(universe, m, ToleranceMedium, 1000)
	assert.ErrorIs(t, err, ErrNoEligibleAssets)
}

func TestSelect_EmptyUniverse(t *testing.T) {
	engine := NewEngine(zerolog.Nop())
	_, err := engine.Select(nil, map[string]metrics.AssetMetrics{}, ToleranceMedium, 1000)
	assert.ErrorIs(t, err, ErrNoEligibleAssets)
}

func TestSelect_FlatUniverseIsDegenerate(t *testing.T) {
	// Identical metrics across the universe: both min-max ranges collapse,
	// every score is defined as 0, and no weights can be formed.
	universe := []string{"A", "B", "C"}
	m := map[string]metrics.AssetMetrics{
		"A": {ExpectedReturn: 0.10, Volatility: 0.20, Sharpe: 0.35},
		"B": {ExpectedReturn: 0.10, Volatility: 0.20, Sharpe: 0.35},
		"C": {ExpectedReturn: 0.10, Volatility: 0.20, Sharpe: 0.35},
	}

	engine := NewEngine(zerolog.Nop())
	_, err := engine.Select(universe, m, ToleranceMedium, 1000)
	assert.ErrorIs(t, err, ErrDegenerateScores)
}

func TestSelect_FlatReturnsStillSelectable(t *testing.T) {
	// Returns are flat (returnScore 0 for all) but risks differ, so the
	// risk scores alone drive the ranking.
	universe := []string{"Risky", "Calm"}
	m := map[string]metrics.AssetMetrics{
		"Risky": {ExpectedReturn: 0.10, Volatility: 0.40, Sharpe: 0.175},
		"Calm":  {ExpectedReturn: 0.10, Volatility: 0.10, Sharpe: 0.70},
	}

	engine := NewEngine(zerolog.Nop())
	portfolio, err := engine.Select(universe, m, ToleranceMedium, 1000)
	require.NoError(t, err)

	require.Len(t, portfolio, 2)
	assert.Equal(t, "Calm", portfolio[0].Name)
	for _, a := range portfolio {
		assert.Equal(t, 0.0, a.ReturnScore, "flat returns normalize to 0, not a division by zero")
	}
	// Risky has finalScore 0 and Calm carries the full weight.
	assert.InDelta(t, 1.0, portfolio[0].Weight, 1e-9)
	assert.InDelta(t, 0.0, portfolio[1].Weight, 1e-9)
}

func TestSelect_CapsAtMaxPortfolioSize(t *testing.T) {
	universe := make([]string, 0, 15)
	m := make(map[string]metrics.AssetMetrics, 15)
	for i := 0; i < 15; i++ {
		name := string(rune('A' + i))
		universe = append(universe, name)
		m[name] = metrics.AssetMetrics{
			ExpectedReturn: 0.05 + float64(i)*0.01,
			Volatility:     0.10 + float64(i)*0.01,
			Sharpe:         1.0,
		}
	}

	engine := NewEngine(zerolog.Nop())
	portfolio, err := engine.Select(universe, m, ToleranceMedium, 1000)
	require.NoError(t, err)

	assert.Len(t, portfolio, MaxPortfolioSize)
}

func TestSelect_TiesKeepUniverseOrder(t *testing.T) {
	// First and Second are identical, Third is strictly worse on both
	// axes; the tie must resolve to universe order.
	universe := []string{"First", "Second", "Third"}
	m := map[string]metrics.AssetMetrics{
		"First":  {ExpectedReturn: 0.20, Volatility: 0.15, Sharpe: 1.13},
		"Second": {ExpectedReturn: 0.20, Volatility: 0.15, Sharpe: 1.13},
		"Third":  {ExpectedReturn: 0.05, Volatility: 0.30, Sharpe: 0.07},
	}

	engine := NewEngine(zerolog.Nop())
	portfolio, err := engine.Select(universe, m, ToleranceMedium, 1000)
	require.NoError(t, err)

	require.Len(t, portfolio, 3)
	assert.Equal(t, "First", portfolio[0].Name)
	assert.Equal(t, "Second", portfolio[1].Name)
	assert.Equal(t, "Third", portfolio[2].Name)
}

func TestSelect_Deterministic(t *testing.T) {
	universe, m := testMetrics()
	engine := NewEngine(zerolog.Nop())

	first, err := engine.Select(universe, m, ToleranceMedium, 2500)
	require.NoError(t, err)
	second, err := engine.Select(universe, m, ToleranceMedium, 2500)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
