package models

// DataRow is one per-dimension time series returned by the metrics API.
//
// Fields:
//   - Chain: network the series belongs to (e.g., "ethereum").
//   - Protocol: protocol identifier (e.g., "uniswap-v3").
//   - Asset: asset identifier, empty for pair-based datasets.
//   - Pair: pair identifier, empty for asset-based datasets.
//   - Values: epoch-second timestamp (as a string) -> metric value.
//
// Rows are never modified after they are decoded.
//
// swagger:model DataRow
type DataRow struct {
	Chain    string             `json:"chain" example:"ethereum"`
	Protocol string             `json:"protocol" example:"uniswap-v3"`
	Asset    string             `json:"asset,omitempty" example:"weth"`
	Pair     string             `json:"pair,omitempty" example:"usdc-weth"`
	Values   map[string]float64 `json:"values"`
}

// Dimension returns the row's value for a selector id (chain, protocol, asset, pair).
// Unknown ids yield "".
func (r DataRow) Dimension(id string) string {
	switch id {
	case "chain":
		return r.Chain
	case "protocol":
		return r.Protocol
	case "asset":
		return r.Asset
	case "pair":
		return r.Pair
	default:
		return ""
	}
}
