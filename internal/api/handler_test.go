package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/defipulse/internal/catalog"
	"github.com/guttosm/defipulse/internal/chart"
	"github.com/guttosm/defipulse/internal/dates"
	"github.com/guttosm/defipulse/internal/domain/dto"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
	"github.com/guttosm/defipulse/internal/service"
)

type mockDashboardService struct {
	dashboard *service.Dashboard
	summary   *service.Summary
	err       error
	catalog   *catalog.Catalog

	lastQuery    service.Query
	lastCategory string
	lastPeriod   dates.Period
}

func (m *mockDashboardService) Selectors(p route.Params) ([]selector.Selector, error) {
	if m.err != nil {
		return nil, m.err
	}
	return selector.GetSelectors(m.catalog, p)
}

func (m *mockDashboardService) Dashboard(_ context.Context, q service.Query) (*service.Dashboard, error) {
	m.lastQuery = q
	return m.dashboard, m.err
}

func (m *mockDashboardService) Summary(_ context.Context, category string, period dates.Period) (*service.Summary, error) {
	m.lastCategory = category
	m.lastPeriod = period
	return m.summary, m.err
}

func (m *mockDashboardService) Catalog() *catalog.Catalog {
	return m.catalog
}

var _ service.DashboardService = (*mockDashboardService)(nil)

var fixedNow = time.Date(2025, 3, 15, 13, 0, 0, 0, time.UTC)

func newMock(t *testing.T) *mockDashboardService {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return &mockDashboardService{
		catalog: c,
		dashboard: &service.Dashboard{
			Route:      route.Params{Category: "amm", Dataset: route.Volume, Type: "asset"},
			ChartType:  chart.Bar,
			Resolution: dates.ResolutionDaily,
			Group:      "protocol",
			Timestamps: []int64{1700000000000},
			Series:     []service.Series{{ID: "curve", Name: "Curve", Color: "#40649f", Values: []float64{4}}},
			Totals:     map[string]float64{"curve": 4},
		},
	}
}

func setupRouterWithMock(s service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, 30)
	h.now = func() time.Time { return fixedNow }
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/dashboard/:category/:dataset", h.GetDashboard)
	v1.GET("/dashboard/:category/:dataset/:type", h.GetDashboard)
	v1.GET("/selectors/:category/:dataset/:type", h.GetSelectors)
	v1.GET("/summary/:category", h.GetSummary)
	v1.GET("/catalog", h.GetCatalog)
	return r
}

func TestGetDashboard_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		query  string
		status int
		assert func(t *testing.T, m *mockDashboardService, body []byte)
	}{
		{
			name:   "unknown dataset",
			query:  "/api/v1/dashboard/amm/tvl/asset",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid days",
			query:  "/api/v1/dashboard/amm/volume/asset?days=zero",
			status: http.StatusBadRequest,
		},
		{
			name:   "from without to",
			query:  "/api/v1/dashboard/amm/volume/asset?from=2025-01-01T00:00:00Z",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid others",
			query:  "/api/v1/dashboard/amm/volume/asset?others=maybe",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid group_by",
			query:  "/api/v1/dashboard/amm/volume/asset?group_by=token",
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown category",
			err:    fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, "perps"),
			query:  "/api/v1/dashboard/perps/volume/asset",
			status: http.StatusNotFound,
		},
		{
			name:   "unknown selector type",
			err:    fmt.Errorf("%w: %q", catalog.ErrUnknownSelectorType, "lp"),
			query:  "/api/v1/dashboard/amm/volume/lp",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid selection",
			err:    fmt.Errorf("%w: chain", selector.ErrInvalidSelection),
			query:  "/api/v1/dashboard/amm/volume/asset?chain=solana",
			status: http.StatusBadRequest,
		},
		{
			name:   "upstream failure",
			err:    fmt.Errorf("%w: boom", service.ErrUpstream),
			query:  "/api/v1/dashboard/amm/volume/asset",
			status: http.StatusBadGateway,
		},
		{
			name:   "internal error",
			err:    errors.New("unexpected"),
			query:  "/api/v1/dashboard/amm/volume/asset",
			status: http.StatusInternalServerError,
		},
		{
			name:   "success with defaults",
			query:  "/api/v1/dashboard/AMM/volume",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockDashboardService, body []byte) {
				q := m.lastQuery
				assert.Equal(t, route.Params{Category: "amm", Dataset: route.Volume, Type: "asset"}, q.Route)
				assert.True(t, q.Others)
				assert.Equal(t, chart.GroupKey(""), q.GroupBy)
				assert.Equal(t, dates.GetPeriod(30, fixedNow), q.Period)
				assert.Empty(t, q.Selection)

				var out dto.DashboardResponse
				require.NoError(t, json.Unmarshal(body, &out))
				assert.Equal(t, "bar", out.ChartType)
				require.Len(t, out.Series, 1)
				assert.Equal(t, "Curve", out.Series[0].Name)
				require.NotNil(t, out.Totals["curve"])
				assert.Equal(t, 4.0, *out.Totals["curve"])
			},
		},
		{
			name:   "success with selection and options",
			query:  "/api/v1/dashboard/amm/liquidity/asset?days=7&asset=WETH&protocol=curve&others=false&group_by=protocol",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockDashboardService, _ []byte) {
				q := m.lastQuery
				assert.False(t, q.Others)
				assert.Equal(t, chart.GroupProtocol, q.GroupBy)
				assert.Equal(t, dates.GetPeriod(7, fixedNow), q.Period)
				assert.Equal(t, map[string]string{"asset": "weth", "protocol": "curve"}, q.Selection)
			},
		},
		{
			name:   "explicit period",
			query:  "/api/v1/dashboard/amm/volume/asset?from=2025-01-01T00:00:00Z&to=2025-02-01T00:00:00Z",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockDashboardService, _ []byte) {
				assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), m.lastQuery.Period.From)
				assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), m.lastQuery.Period.To)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMock(t)
			m.err = tc.err
			r := setupRouterWithMock(m)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, m, w.Body.Bytes())
			}
		})
	}
}

func TestGetDashboard_NaNTotalIsNull(t *testing.T) {
	m := newMock(t)
	m.dashboard.Totals = map[string]float64{"weth": math.NaN()}
	r := setupRouterWithMock(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/amm/liquidity/asset", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totals":{"weth":null}`)
}

func TestGetSelectors(t *testing.T) {
	m := newMock(t)
	r := setupRouterWithMock(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/selectors/amm/fees/asset", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out dto.SelectorsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Selectors, 3)
	assert.Equal(t, []string{"chain", "protocol", "pair"},
		[]string{out.Selectors[0].ID, out.Selectors[1].ID, out.Selectors[2].ID})
	assert.Equal(t, "protocol", out.Group)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/selectors/perps/volume/asset", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/selectors/amm/volume/lp", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSummary(t *testing.T) {
	m := newMock(t)
	m.summary = &service.Summary{
		Category: "lending",
		Datasets: []service.DatasetSummary{
			{Dataset: route.Supply, Total: 10, Totals: map[string]float64{"aave-v3": 10}},
		},
	}
	r := setupRouterWithMock(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/Lending?days=14", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lending", m.lastCategory)
	assert.Equal(t, dates.GetPeriod(14, fixedNow), m.lastPeriod)

	var out dto.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Datasets, 1)
	require.NotNil(t, out.Datasets[0].Total)
	assert.Equal(t, 10.0, *out.Datasets[0].Total)

	m.err = fmt.Errorf("%w: boom", service.ErrUpstream)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/lending", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetCatalog(t *testing.T) {
	m := newMock(t)
	r := setupRouterWithMock(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out dto.CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, []string{"amm", "lending"}, out.Categories)
	assert.Equal(t, "Others", out.Names[selector.Others])
}
