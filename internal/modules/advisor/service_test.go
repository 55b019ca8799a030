package advisor

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/internal/modules/metrics"
	"github.com/aristath/roboadvisor/internal/modules/projection"
	"github.com/aristath/roboadvisor/internal/modules/scoring"
)

// writeTrendingCSV writes a price table with the given assets, each growing
// around its own daily rate over the given number of rows. The increment
// alternates between half and one-and-a-half times the rate so every series
// is strictly increasing but still has nonzero volatility (a constant-rate
// series would have an undefined Sharpe ratio and be dropped).
func writeTrendingCSV(t *testing.T, assets []string, dailyRates []float64, rows int) *history.PriceTable {
	t.Helper()

	var b strings.Builder
	b.WriteString("Date," + strings.Join(assets, ",") + "\n")

	prices := make([]float64, len(assets))
	for j := range prices {
		prices[j] = 100
	}

	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		b.WriteString(base.AddDate(0, 0, i).Format("2006-01-02"))
		for j := range assets {
			if i > 0 {
				step := 0.5
				if i%2 == 0 {
					step = 1.5
				}
				prices[j] *= 1 + dailyRates[j]*step
			}
			b.WriteString(fmt.Sprintf(",%.6f", prices[j]))
		}
		b.WriteString("\n")
	}

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	table, err := history.LoadCSV(path, zerolog.Nop())
	require.NoError(t, err)
	return table
}

func newTestService(t *testing.T, table *history.PriceTable) *Service {
	t.Helper()
	log := zerolog.Nop()
	return NewService(
		history.NewStore(table, log),
		metrics.NewCalculator(log),
		scoring.NewEngine(log),
		projection.NewWithSource(rand.NewPCG(1, 2), log),
		log,
	)
}

func TestGenerate(t *testing.T) {
	table := writeTrendingCSV(t,
		[]string{"HDFC Bank", "Infosys", "Unknown Corp"},
		[]float64{0.0005, 0.001, 0.0002},
		250,
	)
	svc := newTestService(t, table)

	rec, err := svc.Generate(1000, "medium")
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "medium", rec.RiskLevel)
	assert.Equal(t, 1000.0, rec.InvestmentAmount)
	assert.Equal(t, Allocation{Stocks: 60, Bonds: 30, Cash: 10}, rec.Allocation)
	assert.Equal(t, 3, rec.TotalStocks, "all three assets selected when fewer than ten are eligible")
	assert.Len(t, rec.Predictions, 11)
	require.Len(t, rec.StockRecommendations, 3)

	var pctSum, amountSum float64
	for _, sr := range rec.StockRecommendations {
		pctSum += sr.AllocationPercentage
		amountSum += sr.InvestmentAmount
	}
	assert.InDelta(t, 100.0, pctSum, 0.05, "allocation percentages cover the whole investment (2dp rounding)")
	assert.InDelta(t, 1000.0, amountSum, 0.05)
}

func TestGenerate_SectorLabels(t *testing.T) {
	table := writeTrendingCSV(t,
		[]string{"HDFC Bank", "Unknown Corp"},
		[]float64{0.0005, 0.001},
		100,
	)
	svc := newTestService(t, table)

	rec, err := svc.Generate(1000, "high")
	require.NoError(t, err)

	bySector := make(map[string]string)
	for _, sr := range rec.StockRecommendations {
		bySector[sr.Name] = sr.Sector
	}
	assert.Equal(t, "Financials", bySector["HDFC Bank"])
	assert.Equal(t, "Other", bySector["Unknown Corp"], "unmapped assets fall back to Other")
}

func TestGenerate_TopFiveDisplayed(t *testing.T) {
	assets := make([]string, 8)
	rates := make([]float64, 8)
	for i := range assets {
		assets[i] = fmt.Sprintf("Asset %d", i)
		rates[i] = 0.0002 + float64(i)*0.0002
	}
	svc := newTestService(t, writeTrendingCSV(t, assets, rates, 120))

	rec, err := svc.Generate(5000, "medium")
	require.NoError(t, err)

	assert.Equal(t, 8, rec.TotalStocks)
	assert.Len(t, rec.StockRecommendations, 5, "only the top five are detailed")
}

func TestGenerate_DegradedStore(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Generate(1000, "medium")
	assert.ErrorIs(t, err, history.ErrUnavailable)
}

func TestGenerate_FlatUniverse(t *testing.T) {
	// All assets share one growth rate: scores collapse to zero and
	// selection reports degenerate scores.
	table := writeTrendingCSV(t,
		[]string{"A", "B", "C"},
		[]float64{0.001, 0.001, 0.001},
		100,
	)
	svc := newTestService(t, table)

	_, err := svc.Generate(1000, "low")
	assert.ErrorIs(t, err, scoring.ErrDegenerateScores)
}

func TestUniverse(t *testing.T) {
	table := writeTrendingCSV(t,
		[]string{"Infosys", "Unknown Corp"},
		[]float64{0.0005, 0.001},
		10,
	)
	svc := newTestService(t, table)

	stocks := svc.Universe()
	require.Len(t, stocks, 2)
	assert.Equal(t, StockInfo{Name: "Infosys", Sector: "Technology"}, stocks[0])
	assert.Equal(t, StockInfo{Name: "Unknown Corp", Sector: "Other"}, stocks[1])
}

func TestUniverse_Degraded(t *testing.T) {
	svc := newTestService(t, nil)
	assert.Empty(t, svc.Universe())
}

func TestSectorFor(t *testing.T) {
	assert.Equal(t, "Technology", SectorFor("Tata Consultancy Services"))
	assert.Equal(t, "Energy", SectorFor("Reliance Industries"))
	assert.Equal(t, "Other", SectorFor("No Such Company"))
}
