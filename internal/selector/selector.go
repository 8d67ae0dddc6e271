package selector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/guttosm/defipulse/internal/catalog"
	"github.com/guttosm/defipulse/internal/route"
)

const (
	// All marks a selector as the group-by dimension: every option becomes its own series.
	All = "all"
	// Others identifies the synthesized residual series.
	Others = "_others"

	ChainID    = "chain"
	ProtocolID = "protocol"
	AssetID    = "asset"
	PairID     = "pair"

	// DefaultChain is used when no chain selector is present or selected.
	DefaultChain = "ethereum"
)

// ErrInvalidSelection is returned when a requested value is not one of the selector's options.
var ErrInvalidSelection = errors.New("invalid selection")

// Option is one choice of a selector.
type Option struct {
	Value string `json:"value" example:"weth"`
	Text  string `json:"text" example:"WETH"`
}

// Selector is a filterable dimension together with its current selection.
type Selector struct {
	ID       string   `json:"id" example:"asset"`
	Label    string   `json:"label" example:"Asset"`
	Selected string   `json:"selected" example:"all"`
	Options  []Option `json:"options"`
}

var labels = map[string]string{
	ChainID:    "Network",
	ProtocolID: "Protocol",
	AssetID:    "Asset",
	PairID:     "Pair",
}

// order of catalog selectors; unknown ids sort after these, alphabetically.
var idRank = map[string]int{
	ProtocolID: 0,
	AssetID:    1,
	PairID:     2,
}

var chainOptions = []Option{
	{Value: "ethereum", Text: "Ethereum"},
	{Value: "polygon", Text: "Polygon"},
}

// SelectorType resolves which catalog selector table applies to a dataset.
//
// For the amm category, volume can be broken down by asset or pair (taken from typ),
// fees only exist per pair, and everything else is per asset. Other categories are
// always per asset.
func SelectorType(category string, dataset route.Dataset, typ string) string {
	if category != "amm" {
		return AssetID
	}
	switch dataset {
	case route.Volume:
		return typ
	case route.Fees:
		return PairID
	default:
		return AssetID
	}
}

// GetSelectors builds the default selector set for a route: chain on ethereum and
// every catalog dimension in "all" mode.
func GetSelectors(c *catalog.Catalog, p route.Params) ([]Selector, error) {
	return build(c, p.Category, p.Dataset, p.Type, DefaultChain, func(string) string { return All })
}

// AmmAssetVolumeSelectors builds amm volume-by-asset selectors with an explicit selection.
func AmmAssetVolumeSelectors(c *catalog.Catalog, chain, protocol, asset string) ([]Selector, error) {
	return dataSelectors(c, route.Volume, AssetID, chain, protocol, asset)
}

// AmmPairVolumeSelectors builds amm volume-by-pair selectors with an explicit selection.
func AmmPairVolumeSelectors(c *catalog.Catalog, chain, protocol, pair string) ([]Selector, error) {
	return dataSelectors(c, route.Volume, PairID, chain, protocol, pair)
}

// AmmFeeSelectors builds amm fee selectors with an explicit selection.
func AmmFeeSelectors(c *catalog.Catalog, chain, protocol, pair string) ([]Selector, error) {
	return dataSelectors(c, route.Fees, PairID, chain, protocol, pair)
}

// AmmLiquiditySelectors builds amm liquidity selectors with an explicit selection.
func AmmLiquiditySelectors(c *catalog.Catalog, chain, protocol, asset string) ([]Selector, error) {
	return dataSelectors(c, route.Liquidity, AssetID, chain, protocol, asset)
}

func dataSelectors(c *catalog.Catalog, dataset route.Dataset, typ, chain, protocol, secondary string) ([]Selector, error) {
	return build(c, "amm", dataset, typ, chain, func(id string) string {
		if id == ProtocolID {
			return protocol
		}
		return secondary
	})
}

func build(c *catalog.Catalog, category string, dataset route.Dataset, typ, chain string, selected func(id string) string) ([]Selector, error) {
	table, err := c.SelectorOptions(category, SelectorType(category, dataset, typ))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, iok := idRank[ids[i]]
		rj, jok := idRank[ids[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return ids[i] < ids[j]
		}
	})

	out := make([]Selector, 0, len(ids)+1)
	out = append(out, Selector{
		ID:       ChainID,
		Label:    label(ChainID),
		Selected: chain,
		Options:  append([]Option(nil), chainOptions...),
	})
	for _, id := range ids {
		values := table[id]
		options := make([]Option, 0, len(values))
		for _, v := range values {
			options = append(options, Option{Value: v, Text: c.Name(v)})
		}
		out = append(out, Selector{
			ID:       id,
			Label:    label(id),
			Selected: selected(id),
			Options:  options,
		})
	}
	return out, nil
}

func label(id string) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return id
}

// Group returns the id of the first selector in "all" mode, or "" when none is.
func Group(selectors []Selector) string {
	for _, s := range selectors {
		if s.Selected == All {
			return s.ID
		}
	}
	return ""
}

// Chain returns the selected chain, defaulting to ethereum.
func Chain(selectors []Selector) string {
	if s, ok := ByID(selectors, ChainID); ok && s.Selected != "" {
		return s.Selected
	}
	return DefaultChain
}

// ByID finds a selector by id.
func ByID(selectors []Selector, id string) (Selector, bool) {
	for _, s := range selectors {
		if s.ID == id {
			return s, true
		}
	}
	return Selector{}, false
}

// Values returns the option values of a selector, without the "all" sentinel.
func (s Selector) Values() []string {
	out := make([]string, 0, len(s.Options))
	for _, o := range s.Options {
		if o.Value == All {
			continue
		}
		out = append(out, o.Value)
	}
	return out
}

// HasOption reports whether v is one of the selector's option values.
func (s Selector) HasOption(v string) bool {
	for _, o := range s.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Apply returns a copy of selectors with the requested values selected.
//
// Keys that match no selector are ignored. A value must be one of the selector's
// options or the "all" sentinel, otherwise ErrInvalidSelection is returned.
func Apply(selectors []Selector, values map[string]string) ([]Selector, error) {
	out := make([]Selector, len(selectors))
	copy(out, selectors)
	for i := range out {
		v, ok := values[out[i].ID]
		if !ok || v == "" {
			continue
		}
		if v != All && !out[i].HasOption(v) {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidSelection, out[i].ID, v)
		}
		out[i].Selected = v
	}
	return out, nil
}
