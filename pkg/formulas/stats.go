// Package formulas provides shared statistical calculations used by the
// metrics and indicators modules.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization factor for daily statistics.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	return stat.StdDev(data, nil)
}

// RelativeChanges converts a price series to day-over-day relative changes.
// Changes[i] = (Price[i+1] - Price[i]) / Price[i]
//
// Steps where either endpoint is NaN (missing price) are skipped, so the
// result may be shorter than len(prices)-1. A zero previous price is treated
// the same as a missing one.
func RelativeChanges(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	changes := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1], prices[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			continue
		}
		changes = append(changes, (cur-prev)/prev)
	}

	return changes
}

// AnnualizedReturn scales the mean of daily relative changes to a yearly
// figure using the 252 trading-day convention.
func AnnualizedReturn(dailyChanges []float64) float64 {
	return Mean(dailyChanges) * TradingDaysPerYear
}

// AnnualizedVolatility scales the sample standard deviation of daily relative
// changes to a yearly figure.
func AnnualizedVolatility(dailyChanges []float64) float64 {
	return StdDev(dailyChanges) * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio calculates the risk-adjusted return measure
// (annualReturn - riskFreeRate) / annualVolatility.
//
// Returns NaN when volatility is zero or either input is NaN; a zero-variance
// series has no defined Sharpe ratio.
func SharpeRatio(annualReturn, annualVolatility, riskFreeRate float64) float64 {
	if annualVolatility == 0 || math.IsNaN(annualVolatility) || math.IsNaN(annualReturn) {
		return math.NaN()
	}
	return (annualReturn - riskFreeRate) / annualVolatility
}
