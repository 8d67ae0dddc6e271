package aggregation

import (
	"github.com/guttosm/defipulse/internal/chart"
	"github.com/guttosm/defipulse/internal/route"
)

// Totals maps a series id to its summary value.
type Totals map[string]float64

var funcByDataset = map[route.Dataset]func([]float64) float64{
	route.Volume:    Sum,
	route.Fees:      Sum,
	route.Liquidity: Average,
	route.Flow:      Sum,
	route.Supply:    Sum,
	route.Borrow:    Sum,
}

// Total reduces each series to one number. Liquidity is a stock, so it is averaged
// over the period; every other dataset is a flow and is summed.
func Total(dataset route.Dataset, series []chart.Series) Totals {
	f, ok := funcByDataset[dataset]
	if !ok {
		f = Sum
	}
	out := make(Totals, len(series))
	for _, s := range series {
		out[s.ID] = f(s.Values)
	}
	return out
}

// Sum adds all values; an empty slice sums to 0.
func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// Average is the arithmetic mean. An empty slice yields NaN.
func Average(values []float64) float64 {
	return Sum(values) / float64(len(values))
}
