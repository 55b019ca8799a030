// Package projection produces the illustrative growth curve shown alongside
// a recommendation. It is a display feature: the curve is a compounding base
// with random noise, not an output of the scoring engine.
package projection

import (
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aristath/roboadvisor/internal/modules/scoring"
)

// Horizon parameters: one point every 6 months over 5 years, inclusive.
const (
	monthStep   = 6
	monthsTotal = 60
)

// Point is one projected portfolio value at a month offset.
type Point struct {
	Month int `json:"month"`
	Value int `json:"value"`
}

// Generator produces projected value series. By default the noise source is
// the process-global generator, so repeated calls with identical inputs
// yield different outputs; this non-determinism is intentional for an
// illustrative projection. Tests inject a seeded source via NewWithSource.
type Generator struct {
	src rand.Source
	log zerolog.Logger
}

// New creates a generator with unseeded (non-reproducible) noise
func New(log zerolog.Logger) *Generator {
	return &Generator{
		log: log.With().Str("component", "projection").Logger(),
	}
}

// NewWithSource creates a generator drawing noise from the given source,
// making the output reproducible for a fixed seed.
func NewWithSource(src rand.Source, log zerolog.Logger) *Generator {
	return &Generator{
		src: src,
		log: log.With().Str("component", "projection").Logger(),
	}
}

// growthRateFor returns the annual growth rate assumed for a tolerance.
// Unrecognized values get the medium rate.
func growthRateFor(t scoring.Tolerance) float64 {
	switch t {
	case scoring.ToleranceLow:
		return 0.04
	case scoring.ToleranceHigh:
		return 0.08
	default:
		return 0.06
	}
}

// volatilityFor returns the annual noise volatility for a tolerance.
// Unrecognized values get the medium volatility.
func volatilityFor(t scoring.Tolerance) float64 {
	switch t {
	case scoring.ToleranceLow:
		return 0.05
	case scoring.ToleranceHigh:
		return 0.15
	default:
		return 0.10
	}
}

// Project returns 11 points at month offsets 0, 6, ..., 60.
//
// Each point compounds the investment at the tolerance's monthly growth
// rate, then applies a noise factor 1 + N(0, vol/12)·sqrt(month/12). The
// factor is floored at 0.5 so a projected value never goes negative; at
// month 0 the scale is zero and the value is exactly the investment.
func (g *Generator) Project(totalInvestment float64, tolerance scoring.Tolerance) []Point {
	growthRate := growthRateFor(tolerance)
	noise := distuv.Normal{
		Mu:    0,
		Sigma: volatilityFor(tolerance) / 12,
		Src:   g.src,
	}

	points := make([]Point, 0, monthsTotal/monthStep+1)
	for month := 0; month <= monthsTotal; month += monthStep {
		base := totalInvestment * math.Pow(1+growthRate/12, float64(month))
		noiseFactor := 1 + noise.Rand()*math.Sqrt(float64(month)/12)
		value := base * math.Max(0.5, noiseFactor)

		points = append(points, Point{
			Month: month,
			Value: int(math.Round(value)),
		})
	}

	return points
}
