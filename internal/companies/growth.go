package companies

import (
	"strconv"

	"github.com/sawpanic/cea/internal/domain/sectors"
)

// Annual growth rates of the two revenue scenarios.
const (
	BaselineRate = 0.02
	CEARate      = 0.05
)

// Projection is a pair of revenue series aligned to sectors.Years.
type Projection struct {
	Baseline  [sectors.SeriesLen]float64
	Projected [sectors.SeriesLen]float64
}

// ProjectGrowth compounds startRevenue at BaselineRate and CEARate. Each year records the
// running value before that year's growth is applied, so index 0 is startRevenue itself.
// Only recorded values are rounded; the running value keeps full precision.
func ProjectGrowth(startRevenue float64) Projection {
	var p Projection
	base, cea := startRevenue, startRevenue
	for i := range sectors.Years {
		p.Baseline[i] = round2(base)
		p.Projected[i] = round2(cea)
		base *= 1.0 + BaselineRate
		cea *= 1.0 + CEARate
	}
	return p
}

// round2 rounds to 2 decimals from the exact binary value, ties to even.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
