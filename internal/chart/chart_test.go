package chart

import (
	"testing"

	"github.com/guttosm/defipulse/internal/domain/models"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assetSelectors(asset string) []selector.Selector {
	return []selector.Selector{
		{ID: "chain", Selected: "ethereum", Options: []selector.Option{{Value: "ethereum"}, {Value: "polygon"}}},
		{ID: "protocol", Selected: "uniswap-v3", Options: []selector.Option{{Value: "uniswap-v3"}}},
		{ID: "asset", Selected: asset, Options: []selector.Option{{Value: "weth"}, {Value: "usdc"}}},
	}
}

func row(asset string, values map[string]float64) models.DataRow {
	return models.DataRow{Chain: "ethereum", Protocol: "uniswap-v3", Asset: asset, Values: values}
}

func TestTypeFor(t *testing.T) {
	assert.Equal(t, Area, TypeFor(route.Liquidity))
	for _, d := range []route.Dataset{route.Volume, route.Fees, route.Flow, route.Supply, route.Borrow} {
		assert.Equal(t, Bar, TypeFor(d), string(d))
	}
}

func TestTimestamps(t *testing.T) {
	rows := []models.DataRow{
		row("weth", map[string]float64{"1700086400": 2, "1700000000": 1, "1700172800": 3}),
		row("usdc", map[string]float64{"1700000000": 5}),
	}
	got := Timestamps(rows, assetSelectors(selector.All))
	assert.Equal(t, []int64{1700000000000, 1700086400000, 1700172800000}, got)
}

func TestTimestamps_Empty(t *testing.T) {
	assert.Equal(t, []int64{}, Timestamps(nil, assetSelectors(selector.All)))
	assert.Equal(t, []int64{}, Timestamps([]models.DataRow{row("weth", map[string]float64{"1": 1})}, nil))
	// usdc row missing
	assert.Equal(t, []int64{}, Timestamps([]models.DataRow{row("weth", map[string]float64{"1": 1})}, assetSelectors(selector.All)))
}

func TestData_GroupBy(t *testing.T) {
	rows := []models.DataRow{
		row("usdc", map[string]float64{"200": 20, "100": 10}),
		row("weth", map[string]float64{"100": 1, "200": 2}),
		{Chain: "polygon", Protocol: "uniswap-v3", Asset: "weth", Values: map[string]float64{"100": 99, "200": 99}},
	}
	got := Data(rows, assetSelectors(selector.All), Options{})
	require.Len(t, got, 2)
	assert.Equal(t, Series{ID: "weth", Values: []float64{1, 2}}, got[0])
	assert.Equal(t, Series{ID: "usdc", Values: []float64{10, 20}}, got[1])
}

func TestData_NoGroup(t *testing.T) {
	rows := []models.DataRow{
		row("usdc", map[string]float64{"100": 10}),
		row("weth", map[string]float64{"100": 1}),
	}
	got := Data(rows, assetSelectors("usdc"), Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "usdc", got[0].ID)
	assert.Equal(t, []float64{10}, got[0].Values)
}

func TestData_MatchesPair(t *testing.T) {
	sels := []selector.Selector{
		{ID: "chain", Selected: "ethereum"},
		{ID: "protocol", Selected: "sushiswap"},
		{ID: "pair", Selected: "dai-weth"},
	}
	rows := []models.DataRow{{Chain: "ethereum", Protocol: "sushiswap", Pair: "dai-weth", Values: map[string]float64{"5": 7}}}
	got := Data(rows, sels, Options{})
	require.Len(t, got, 1)
	assert.Equal(t, []float64{7}, got[0].Values)
}

func TestData_MissingRowEmptiesEverything(t *testing.T) {
	rows := []models.DataRow{
		row("weth", map[string]float64{"100": 1}),
	}
	got := Data(rows, assetSelectors(selector.All), Options{Others: true})
	assert.Empty(t, got)
	assert.NotNil(t, got)

	// a row with no values counts as missing
	rows = append(rows, row("usdc", map[string]float64{}))
	assert.Empty(t, Data(rows, assetSelectors(selector.All), Options{}))
}

func TestData_Others(t *testing.T) {
	rows := []models.DataRow{
		row("weth", map[string]float64{"100": 40, "200": 50}),
		row("usdc", map[string]float64{"100": 20, "200": 80}),
		row(selector.All, map[string]float64{"100": 100, "200": 120}),
	}
	got := Data(rows, assetSelectors(selector.All), Options{Others: true, Dataset: route.Liquidity})
	require.Len(t, got, 3)
	assert.Equal(t, selector.Others, got[2].ID)
	// 100-60=40; 120-130 floors at 0
	assert.Equal(t, []float64{40, 0}, got[2].Values)
}

func TestData_OthersDoublesAssetVolume(t *testing.T) {
	rows := []models.DataRow{
		row("weth", map[string]float64{"100": 60}),
		row("usdc", map[string]float64{"100": 50}),
		row(selector.All, map[string]float64{"100": 100}),
	}
	got := Data(rows, assetSelectors(selector.All), Options{Others: true, Dataset: route.Volume})
	require.Len(t, got, 3)
	assert.Equal(t, []float64{90}, got[2].Values)

	got = Data(rows, assetSelectors(selector.All), Options{Others: true, Dataset: route.Fees})
	require.Len(t, got, 3)
	assert.Equal(t, []float64{0}, got[2].Values)
}

func TestData_OthersVolumeGroupedByProtocolNotDoubled(t *testing.T) {
	sels := []selector.Selector{
		{ID: "chain", Selected: "ethereum", Options: []selector.Option{{Value: "ethereum"}}},
		{ID: "protocol", Selected: selector.All, Options: []selector.Option{{Value: selector.All}, {Value: "uniswap-v3"}, {Value: "curve"}}},
		{ID: "asset", Selected: selector.All, Options: []selector.Option{{Value: selector.All}, {Value: "weth"}}},
	}
	rows := []models.DataRow{
		{Chain: "ethereum", Protocol: "uniswap-v3", Asset: selector.All, Values: map[string]float64{"100": 60}},
		{Chain: "ethereum", Protocol: "curve", Asset: selector.All, Values: map[string]float64{"100": 40}},
		{Chain: "ethereum", Protocol: selector.All, Asset: selector.All, Values: map[string]float64{"100": 100}},
	}
	got := Data(rows, sels, Options{Others: true, Dataset: route.Volume})
	require.Len(t, got, 3)
	assert.Equal(t, "uniswap-v3", got[0].ID)
	assert.Equal(t, selector.Others, got[2].ID)
	assert.Equal(t, []float64{0}, got[2].Values)
}

func TestData_OthersSkippedWithoutAggregateRow(t *testing.T) {
	rows := []models.DataRow{
		row("weth", map[string]float64{"100": 60}),
		row("usdc", map[string]float64{"100": 50}),
	}
	got := Data(rows, assetSelectors(selector.All), Options{Others: true})
	assert.Len(t, got, 2)

	got = Data(rows, assetSelectors("weth"), Options{Others: true})
	assert.Len(t, got, 1)
}

func TestResidual(t *testing.T) {
	named := []Series{{ID: "a", Values: []float64{30}}, {ID: "b", Values: []float64{30}}}
	assert.Equal(t, []float64{40}, Residual([]float64{100}, 1, named))

	named = []Series{{ID: "a", Values: []float64{80}}, {ID: "b", Values: []float64{30}}}
	assert.Equal(t, []float64{0}, Residual([]float64{100}, 1, named))
}
