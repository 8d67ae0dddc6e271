package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/defipulse/internal/aggregation"
	"github.com/guttosm/defipulse/internal/catalog"
	"github.com/guttosm/defipulse/internal/chart"
	"github.com/guttosm/defipulse/internal/dates"
	"github.com/guttosm/defipulse/internal/logger"
	"github.com/guttosm/defipulse/internal/metrics"
	"github.com/guttosm/defipulse/internal/metricsapi"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
)

// ErrUpstream wraps every failure coming from the metrics API.
var ErrUpstream = errors.New("metrics api request failed")

// Query is everything needed to build one dashboard.
//
// Fields:
//   - Route: category/dataset/type taken from the URL path.
//   - Selection: selector id -> requested value; missing ids keep their defaults.
//   - Period: time window to fetch.
//   - Others: synthesize the residual "_others" series when possible.
//   - GroupBy: when set, rows are merged on this key instead of matched per selector.
type Query struct {
	Route     route.Params
	Selection map[string]string
	Period    dates.Period
	Others    bool
	GroupBy   chart.GroupKey
}

// Series is a chart series ready for display.
type Series struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// Dashboard is the shaped result of one metrics fetch.
type Dashboard struct {
	Route      route.Params
	ChartType  chart.Type
	Period     dates.Period
	Resolution dates.Resolution
	Group      string
	Selectors  []selector.Selector
	Timestamps []int64
	Series     []Series
	Totals     aggregation.Totals
}

// DatasetSummary holds the totals of one dataset's default dashboard.
type DatasetSummary struct {
	Dataset route.Dataset
	Totals  aggregation.Totals
	Total   float64
}

// Summary collects the default dashboards of every dataset in a category.
type Summary struct {
	Category string
	Period   dates.Period
	Datasets []DatasetSummary
}

// DashboardService builds chart data from the catalog and the metrics API.
type DashboardService interface {
	Selectors(p route.Params) ([]selector.Selector, error)
	Dashboard(ctx context.Context, q Query) (*Dashboard, error)
	Summary(ctx context.Context, category string, period dates.Period) (*Summary, error)
	Catalog() *catalog.Catalog
}

type dashboardService struct {
	catalog *catalog.Catalog
	fetcher metricsapi.Fetcher
}

// NewDashboardService wires the static catalog and the metrics API fetcher.
func NewDashboardService(c *catalog.Catalog, f metricsapi.Fetcher) DashboardService {
	return &dashboardService{catalog: c, fetcher: f}
}

func (s *dashboardService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Selectors returns the default selectors for a route.
func (s *dashboardService) Selectors(p route.Params) ([]selector.Selector, error) {
	return selector.GetSelectors(s.catalog, p)
}

// Dashboard runs the full pipeline for one query:
// selectors -> one metrics API call -> chart shaping -> totals.
func (s *dashboardService) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	defaults, err := s.Selectors(q.Route)
	if err != nil {
		return nil, err
	}
	sels, err := selector.Apply(defaults, q.Selection)
	if err != nil {
		return nil, err
	}

	rows, err := s.fetcher.GetData(ctx, q.Route, sels, q.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	var (
		timestamps []int64
		series     []chart.Series
	)
	if q.GroupBy != "" {
		timestamps, series = chart.GroupedData(rows, q.GroupBy)
	} else {
		timestamps = chart.Timestamps(rows, sels)
		series = chart.Data(rows, sels, chart.Options{Others: q.Others, Dataset: q.Route.Dataset})
	}

	if len(series) == 0 {
		metrics.EmptyChartsTotal.WithLabelValues(string(q.Route.Dataset)).Inc()
		logger.L().Warn().
			Str("route", q.Route.Path()).
			Int("rows", len(rows)).
			Msg("dashboard_empty")
	}

	return &Dashboard{
		Route:      q.Route,
		ChartType:  chart.TypeFor(q.Route.Dataset),
		Period:     q.Period,
		Resolution: dates.ResolutionByPeriod(q.Period),
		Group:      selector.Group(sels),
		Selectors:  sels,
		Timestamps: timestamps,
		Series:     s.label(series),
		Totals:     aggregation.Total(q.Route.Dataset, series),
	}, nil
}

func (s *dashboardService) label(series []chart.Series) []Series {
	out := make([]Series, 0, len(series))
	for _, cs := range series {
		out = append(out, Series{
			ID:     cs.ID,
			Name:   s.catalog.Name(cs.ID),
			Color:  s.catalog.Color(cs.ID),
			Values: cs.Values,
		})
	}
	return out
}

// Summary fetches the default dashboard of every dataset of a category concurrently.
//
// Behavior:
//   - One metrics API request per dataset, all sharing ctx.
//   - The first failure cancels the remaining requests and is returned.
//   - Datasets keep the catalog order.
func (s *dashboardService) Summary(ctx context.Context, category string, period dates.Period) (*Summary, error) {
	if !s.catalog.HasCategory(category) {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, category)
	}
	datasets := s.catalog.DatasetsFor(category)
	out := make([]DatasetSummary, len(datasets))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range datasets {
		idx := i
		ds := name
		g.Go(func() error {
			p, err := route.New(category, ds, "")
			if err != nil {
				return err
			}
			d, err := s.Dashboard(gctx, Query{Route: p, Period: period, Others: true})
			if err != nil {
				return fmt.Errorf("%s: %w", p.Path(), err)
			}
			total := 0.0
			for _, v := range d.Totals {
				total += v
			}
			out[idx] = DatasetSummary{Dataset: p.Dataset, Totals: d.Totals, Total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Summary{Category: category, Period: period, Datasets: out}, nil
}
