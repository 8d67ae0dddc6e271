package dto

import (
	"math"

	"github.com/guttosm/defipulse/internal/dates"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
	"github.com/guttosm/defipulse/internal/service"
)

// SeriesResponse is one chart series as rendered by the frontend.
type SeriesResponse struct {
	ID     string    `json:"id" example:"uniswap-v3"`
	Name   string    `json:"name" example:"Uniswap V3"`
	Color  string    `json:"color" example:"#e8006f"`
	Values []float64 `json:"values"`
}

// DashboardResponse represents the JSON body returned by
// GET /api/v1/dashboard/{category}/{dataset}/{type}.
//
// Timestamps are epoch milliseconds; every series has one value per timestamp.
// Totals hold null where the summary is undefined (the average of an empty series).
type DashboardResponse struct {
	Route      route.Params        `json:"route"`
	ChartType  string              `json:"chart_type" example:"bar"`
	Period     dates.Period        `json:"period"`
	Resolution string              `json:"resolution" example:"1d"`
	Group      string              `json:"group,omitempty" example:"protocol"`
	Selectors  []selector.Selector `json:"selectors"`
	Timestamps []int64             `json:"timestamps"`
	Series     []SeriesResponse    `json:"series"`
	Totals     map[string]*float64 `json:"totals"`
}

// SelectorsResponse is returned by GET /api/v1/selectors/{category}/{dataset}/{type}.
type SelectorsResponse struct {
	Route     route.Params        `json:"route"`
	Group     string              `json:"group,omitempty" example:"protocol"`
	Selectors []selector.Selector `json:"selectors"`
}

// DatasetSummaryResponse holds the totals of one dataset in a category summary.
type DatasetSummaryResponse struct {
	Dataset string              `json:"dataset" example:"volume"`
	Total   *float64            `json:"total"`
	Totals  map[string]*float64 `json:"totals"`
}

// SummaryResponse is returned by GET /api/v1/summary/{category}.
type SummaryResponse struct {
	Category string                   `json:"category" example:"amm"`
	Period   dates.Period             `json:"period"`
	Datasets []DatasetSummaryResponse `json:"datasets"`
}

// CatalogResponse exposes display names and colors so clients can label series themselves.
type CatalogResponse struct {
	Categories   []string          `json:"categories"`
	DefaultColor string            `json:"default_color" example:"#9e9e9e"`
	Names        map[string]string `json:"names"`
	Colors       map[string]string `json:"colors"`
}

// JSONNumber converts v for JSON output: NaN and ±Inf become nil (null).
func JSONNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// JSONTotals applies JSONNumber to every entry.
func JSONTotals(totals map[string]float64) map[string]*float64 {
	out := make(map[string]*float64, len(totals))
	for k, v := range totals {
		out[k] = JSONNumber(v)
	}
	return out
}

// NewDashboardResponse converts a service dashboard into its JSON form.
// Nil slices become empty arrays.
func NewDashboardResponse(d *service.Dashboard) DashboardResponse {
	series := make([]SeriesResponse, 0, len(d.Series))
	for _, s := range d.Series {
		series = append(series, SeriesResponse{ID: s.ID, Name: s.Name, Color: s.Color, Values: s.Values})
	}
	timestamps := d.Timestamps
	if timestamps == nil {
		timestamps = []int64{}
	}
	return DashboardResponse{
		Route:      d.Route,
		ChartType:  string(d.ChartType),
		Period:     d.Period,
		Resolution: string(d.Resolution),
		Group:      d.Group,
		Selectors:  d.Selectors,
		Timestamps: timestamps,
		Series:     series,
		Totals:     JSONTotals(d.Totals),
	}
}

// NewSummaryResponse converts a category summary into its JSON form.
func NewSummaryResponse(s *service.Summary) SummaryResponse {
	resp := SummaryResponse{
		Category: s.Category,
		Period:   s.Period,
		Datasets: make([]DatasetSummaryResponse, 0, len(s.Datasets)),
	}
	for _, ds := range s.Datasets {
		resp.Datasets = append(resp.Datasets, DatasetSummaryResponse{
			Dataset: string(ds.Dataset),
			Total:   JSONNumber(ds.Total),
			Totals:  JSONTotals(ds.Totals),
		})
	}
	return resp
}
