package chart

import (
	"errors"
	"testing"

	"github.com/guttosm/defipulse/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupKey(t *testing.T) {
	for _, s := range []string{"all", "asset", "pair", "protocol", "chain", " Protocol "} {
		_, err := ParseGroupKey(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseGroupKey("token")
	assert.True(t, errors.Is(err, ErrUnknownGroupKey))
}

func TestGroupRows_SumsSharedKey(t *testing.T) {
	rows := []models.DataRow{
		{Chain: "ethereum", Protocol: "uniswap-v3", Asset: "weth", Values: map[string]float64{"100": 1, "200": 2}},
		{Chain: "ethereum", Protocol: "sushiswap", Asset: "weth", Values: map[string]float64{"100": 10, "300": 30}},
		{Chain: "ethereum", Protocol: "sushiswap", Asset: "usdc", Values: map[string]float64{"100": 5}},
	}
	got := GroupRows(rows, GroupAsset)
	require.Len(t, got, 2)

	assert.Equal(t, "weth", got[0].Asset)
	assert.Equal(t, "all", got[0].Protocol)
	assert.Equal(t, map[string]float64{"100": 11, "200": 2, "300": 30}, got[0].Values)
	assert.Equal(t, "usdc", got[1].Asset)

	// inputs are untouched
	assert.Equal(t, map[string]float64{"100": 1, "200": 2}, rows[0].Values)
}

func TestGroupRows_All(t *testing.T) {
	rows := []models.DataRow{
		{Chain: "ethereum", Protocol: "a", Asset: "x", Values: map[string]float64{"1": 1}},
		{Chain: "polygon", Protocol: "b", Asset: "y", Values: map[string]float64{"1": 2}},
	}
	got := GroupRows(rows, GroupAll)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]float64{"1": 3}, got[0].Values)
	assert.Equal(t, "all", got[0].Chain)
}

func TestGroupedData(t *testing.T) {
	rows := []models.DataRow{
		{Chain: "polygon", Protocol: "uniswap-v3", Asset: "weth", Values: map[string]float64{"200": 2}},
		{Chain: "ethereum", Protocol: "uniswap-v3", Asset: "weth", Values: map[string]float64{"100": 1}},
		{Chain: "ethereum", Protocol: "curve", Asset: "dai", Values: map[string]float64{"100": 4, "200": 6}},
	}
	ts, series := GroupedData(rows, GroupChain)
	assert.Equal(t, []int64{100000, 200000}, ts)
	require.Len(t, series, 2)
	assert.Equal(t, Series{ID: "ethereum", Values: []float64{5, 6}}, series[0])
	assert.Equal(t, Series{ID: "polygon", Values: []float64{0, 2}}, series[1])

	ts, series = GroupedData(nil, GroupAsset)
	assert.Empty(t, ts)
	assert.Empty(t, series)
}
