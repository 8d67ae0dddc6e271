package chart

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/defipulse/internal/domain/models"
	"github.com/guttosm/defipulse/internal/selector"
)

// GroupKey is the dimension rows are merged on.
type GroupKey string

const (
	GroupAll      GroupKey = "all"
	GroupAsset    GroupKey = "asset"
	GroupPair     GroupKey = "pair"
	GroupProtocol GroupKey = "protocol"
	GroupChain    GroupKey = "chain"
)

// ErrUnknownGroupKey is returned by ParseGroupKey for anything outside the known keys.
var ErrUnknownGroupKey = errors.New("unknown group key")

// ParseGroupKey validates a group_by value.
func ParseGroupKey(s string) (GroupKey, error) {
	switch k := GroupKey(strings.ToLower(strings.TrimSpace(s))); k {
	case GroupAll, GroupAsset, GroupPair, GroupProtocol, GroupChain:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroupKey, s)
}

func (k GroupKey) of(r models.DataRow) string {
	if k == GroupAll {
		return selector.All
	}
	return r.Dimension(string(k))
}

// GroupRows merges rows sharing the same value of key by summing their values
// timestamp by timestamp. Dimensions other than key are set to "all" on the merged row.
// Groups keep the order in which they first appear.
func GroupRows(rows []models.DataRow, key GroupKey) []models.DataRow {
	index := make(map[string]int)
	out := make([]models.DataRow, 0)
	for _, r := range rows {
		k := key.of(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, groupedRow(key, k))
		}
		for ts, v := range r.Values {
			out[i].Values[ts] += v
		}
	}
	return out
}

func groupedRow(key GroupKey, value string) models.DataRow {
	row := models.DataRow{
		Chain:    selector.All,
		Protocol: selector.All,
		Asset:    selector.All,
		Pair:     selector.All,
		Values:   map[string]float64{},
	}
	switch key {
	case GroupChain:
		row.Chain = value
	case GroupProtocol:
		row.Protocol = value
	case GroupAsset:
		row.Asset = value
	case GroupPair:
		row.Pair = value
	}
	return row
}

// GroupedData groups rows on key and returns one series per group, ordered by id,
// on the union of all timestamps (epoch milliseconds). Missing points are zero.
func GroupedData(rows []models.DataRow, key GroupKey) ([]int64, []Series) {
	merged := GroupRows(rows, key)
	if len(merged) == 0 {
		return []int64{}, []Series{}
	}

	union := make(map[string]float64)
	for _, r := range merged {
		for ts := range r.Values {
			union[ts] = 0
		}
	}
	axis := sortedKeys(union)

	out := make([]Series, 0, len(merged))
	for _, r := range merged {
		out = append(out, Series{ID: key.of(r), Values: valuesOnAxis(r.Values, axis)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return toMillis(axis), out
}
