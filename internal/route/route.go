package route

import (
	"errors"
	"fmt"
	"strings"
)

// Dataset is the metric family shown on a dashboard.
type Dataset string

const (
	Volume    Dataset = "volume"
	Fees      Dataset = "fees"
	Liquidity Dataset = "liquidity"
	Flow      Dataset = "flow"
	Supply    Dataset = "supply"
	Borrow    Dataset = "borrow"
)

// DefaultType is used when the route carries no type segment.
const DefaultType = "asset"

// Datasets lists every supported dataset in display order.
var Datasets = []Dataset{Volume, Fees, Liquidity, Flow, Supply, Borrow}

// ErrUnknownDataset is returned for a dataset segment outside Datasets.
var ErrUnknownDataset = errors.New("unknown dataset")

// ParseDataset validates a raw path segment.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Datasets {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
}

// Params are the typed values carried by /{category}/{dataset}/{type} routes.
type Params struct {
	Category string  `json:"category" example:"amm"`
	Dataset  Dataset `json:"dataset" example:"volume"`
	Type     string  `json:"type" example:"asset"`
}

// New builds Params from raw path segments.
//
// Behavior:
//   - Category and type are lower-cased and trimmed.
//   - An empty type falls back to DefaultType.
//   - Category must be non-empty; dataset must be one of Datasets.
func New(category, dataset, typ string) (Params, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return Params{}, errors.New("category is required")
	}
	d, err := ParseDataset(dataset)
	if err != nil {
		return Params{}, err
	}
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		typ = DefaultType
	}
	return Params{Category: category, Dataset: d, Type: typ}, nil
}

// Path renders the params back into their URL path form.
func (p Params) Path() string {
	return fmt.Sprintf("%s/%s/%s", p.Category, p.Dataset, p.Type)
}
