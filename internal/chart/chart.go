package chart

import (
	"sort"
	"strconv"

	"github.com/guttosm/defipulse/internal/domain/models"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
)

// Type is the kind of chart a dataset is drawn with.
type Type string

const (
	Bar  Type = "bar"
	Area Type = "area"
	Line Type = "line"
)

var typeByDataset = map[route.Dataset]Type{
	route.Volume:    Bar,
	route.Fees:      Bar,
	route.Liquidity: Area,
	route.Flow:      Bar,
	route.Supply:    Bar,
	route.Borrow:    Bar,
}

// Series is one rendered line/bar set. Values follow the shared timestamp axis.
type Series struct {
	ID     string    `json:"id" example:"weth"`
	Values []float64 `json:"values"`
}

// Options tune Data.
//
// Fields:
//   - Others: synthesize a residual "_others" series when a group-by selector is set
//     and the rows include the aggregate ("all") row for it.
//   - Dataset: volume grouped by asset gets the double-counting correction.
type Options struct {
	Others  bool
	Dataset route.Dataset
}

// TypeFor returns the chart type used for a dataset; liquidity is an area chart, the rest bars.
func TypeFor(d route.Dataset) Type {
	if t, ok := typeByDataset[d]; ok {
		return t
	}
	return Bar
}

// combination is one fixed value per selector id.
type combination struct {
	id   string
	keys []keyValue
}

type keyValue struct {
	id    string
	value string
}

// Timestamps returns the shared x-axis in epoch milliseconds.
//
// It is empty when there are no rows or selectors, or when any selector combination
// has no matching row.
func Timestamps(rows []models.DataRow, selectors []selector.Selector) []int64 {
	if len(rows) == 0 || len(selectors) == 0 {
		return []int64{}
	}
	datasets, ok := seriesDatasets(rows, combinations(selectors))
	if !ok {
		return []int64{}
	}
	axis := sortedKeys(datasets[0])
	return toMillis(axis)
}

// Data pivots rows into one series per selector combination.
//
// The group-by selector (first one in "all" mode) expands to each of its options; every
// other selector stays on its selected value. Each combination must match a row on chain,
// protocol, and asset-or-pair; if any does not, no series are returned at all.
func Data(rows []models.DataRow, selectors []selector.Selector, opts Options) []Series {
	if len(rows) == 0 || len(selectors) == 0 {
		return []Series{}
	}
	combos := combinations(selectors)
	datasets, ok := seriesDatasets(rows, combos)
	if !ok {
		return []Series{}
	}

	axis := sortedKeys(datasets[0])
	out := make([]Series, 0, len(datasets)+1)
	for i, ds := range datasets {
		out = append(out, Series{ID: combos[i].id, Values: valuesOnAxis(ds, axis)})
	}

	if opts.Others {
		if others, ok := othersSeries(rows, selectors, out, axis, opts); ok {
			out = append(out, others)
		}
	}
	return out
}

// othersSeries computes max(0, all*k - sum(named)) per timestamp, where "all" is the
// aggregate row of the group-by dimension.
func othersSeries(rows []models.DataRow, selectors []selector.Selector, named []Series, axis []string, opts Options) (Series, bool) {
	group := selector.Group(selectors)
	if group == "" {
		return Series{}, false
	}
	keys := make([]keyValue, 0, len(selectors))
	for _, s := range selectors {
		keys = append(keys, keyValue{id: s.ID, value: s.Selected})
	}
	total, ok := findRow(rows, keys)
	if !ok {
		return Series{}, false
	}

	factor := 1.0
	// Every swap touches two assets, so per-asset volume series sum to twice the total.
	if opts.Dataset == route.Volume && group == selector.AssetID {
		factor = 2
	}

	all := valuesOnAxis(total, axis)
	return Series{ID: selector.Others, Values: Residual(all, factor, named)}, true
}

// Residual returns max(0, total[i]*factor - Σ series[i]) for every index of total.
func Residual(total []float64, factor float64, series []Series) []float64 {
	out := make([]float64, len(total))
	for i, t := range total {
		sum := 0.0
		for _, s := range series {
			if i < len(s.Values) {
				sum += s.Values[i]
			}
		}
		r := t*factor - sum
		if r < 0 {
			r = 0
		}
		out[i] = r
	}
	return out
}

func combinations(selectors []selector.Selector) []combination {
	group := selector.Group(selectors)

	fixed := func(override string) []keyValue {
		keys := make([]keyValue, 0, len(selectors))
		for _, s := range selectors {
			v := s.Selected
			if s.ID == group {
				v = override
			}
			keys = append(keys, keyValue{id: s.ID, value: v})
		}
		return keys
	}

	if group == "" {
		last := selectors[len(selectors)-1].Selected
		return []combination{{id: last, keys: fixed("")}}
	}

	g, _ := selector.ByID(selectors, group)
	values := g.Values()
	out := make([]combination, 0, len(values))
	for _, v := range values {
		out = append(out, combination{id: v, keys: fixed(v)})
	}
	return out
}

// seriesDatasets resolves each combination to its row values. ok is false when any
// combination has no row, or a row with no values.
func seriesDatasets(rows []models.DataRow, combos []combination) ([]map[string]float64, bool) {
	if len(combos) == 0 {
		return nil, false
	}
	out := make([]map[string]float64, 0, len(combos))
	for _, c := range combos {
		values, ok := findRow(rows, c.keys)
		if !ok || len(values) == 0 {
			return nil, false
		}
		out = append(out, values)
	}
	return out, true
}

func findRow(rows []models.DataRow, keys []keyValue) (map[string]float64, bool) {
	for _, r := range rows {
		if matches(r, keys) {
			return r.Values, true
		}
	}
	return nil, false
}

// matches compares chain and protocol exactly; asset and pair ids match either
// the row's asset or its pair. Ids the row has no dimension for are ignored.
func matches(r models.DataRow, keys []keyValue) bool {
	for _, k := range keys {
		switch k.id {
		case selector.ChainID, selector.ProtocolID:
			if r.Dimension(k.id) != k.value {
				return false
			}
		case selector.AssetID, selector.PairID:
			if r.Asset != k.value && r.Pair != k.value {
				return false
			}
		}
	}
	return true
}

// sortedKeys returns the numeric timestamp keys of values in ascending order.
// Keys that are not integers are dropped.
func sortedKeys(values map[string]float64) []string {
	type entry struct {
		key string
		ts  int64
	}
	entries := make([]entry, 0, len(values))
	for k := range values {
		ts, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, entry{key: k, ts: ts})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ts < entries[j].ts })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

func valuesOnAxis(values map[string]float64, axis []string) []float64 {
	out := make([]float64, len(axis))
	for i, k := range axis {
		out[i] = values[k]
	}
	return out
}

func toMillis(axis []string) []int64 {
	out := make([]int64, 0, len(axis))
	for _, k := range axis {
		ts, _ := strconv.ParseInt(k, 10, 64)
		out = append(out, ts*1000)
	}
	return out
}
