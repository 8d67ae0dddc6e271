package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/defipulse/internal/catalog"
	"github.com/guttosm/defipulse/internal/chart"
	"github.com/guttosm/defipulse/internal/dates"
	"github.com/guttosm/defipulse/internal/domain/dto"
	"github.com/guttosm/defipulse/internal/middleware"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
	"github.com/guttosm/defipulse/internal/service"
)

// Query parameters that are not selector ids.
var reservedParams = map[string]struct{}{
	"days":     {},
	"from":     {},
	"to":       {},
	"others":   {},
	"group_by": {},
}

// Handler provides HTTP handlers for dashboard endpoints.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Call the dashboard service
//   - Translate service results into response DTOs
//   - Map domain errors to HTTP status codes
type Handler struct {
	svc         service.DashboardService
	defaultDays int
	now         func() time.Time
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.DashboardService): dashboard pipeline.
//   - defaultDays (int): window length used when neither days nor from/to are given.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.DashboardService, defaultDays int) *Handler {
	if defaultDays < 1 {
		defaultDays = 30
	}
	return &Handler{svc: svc, defaultDays: defaultDays, now: time.Now}
}

type routeURI struct {
	Category string `uri:"category" binding:"required"`
	Dataset  string `uri:"dataset" binding:"required"`
	Type     string `uri:"type"`
}

func (h *Handler) routeParams(c *gin.Context) (route.Params, bool) {
	var uri routeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid route", err)
		return route.Params{}, false
	}
	p, err := route.New(uri.Category, uri.Dataset, uri.Type)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid route", err)
		return route.Params{}, false
	}
	return p, true
}

// period resolves the time window from either ?from=&to= (RFC 3339) or ?days=N.
func (h *Handler) period(c *gin.Context) (dates.Period, error) {
	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return dates.Period{}, errors.New("from and to must be given together")
		}
		return dates.ParsePeriod(from, to)
	}
	days := h.defaultDays
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return dates.Period{}, errors.New("days must be a positive integer")
		}
		days = n
	}
	return dates.GetPeriod(days, h.now()), nil
}

func selection(c *gin.Context) map[string]string {
	out := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		if _, ok := reservedParams[k]; ok || len(v) == 0 {
			continue
		}
		out[k] = strings.ToLower(strings.TrimSpace(v[0]))
	}
	return out
}

// GetDashboard handles GET /api/v1/dashboard/{category}/{dataset}/{type}.
//
// GetDashboard godoc
// @Summary      Get chart data for a dashboard
// @Description  Fetches the metrics API for the route's selectors and shapes the result into chart series
// @Tags         dashboard
// @Produce      json
// @Param        category  path      string  true   "Category" example(amm)
// @Param        dataset   path      string  true   "Dataset" example(volume)
// @Param        type      path      string  false  "Selector type" example(asset)
// @Param        days      query     int     false  "Window length in days, ending yesterday" example(30)
// @Param        from      query     string  false  "Window start (RFC 3339)"
// @Param        to        query     string  false  "Window end (RFC 3339)"
// @Param        others    query     bool    false  "Add the residual others series" default(true)
// @Param        group_by  query     string  false  "Merge rows on this key" Enums(all, asset, pair, protocol, chain)
// @Param        chain     query     string  false  "Chain selector" example(ethereum)
// @Param        protocol  query     string  false  "Protocol selector" example(all)
// @Param        asset     query     string  false  "Asset selector" example(weth)
// @Param        pair      query     string  false  "Pair selector" example(usdc-weth)
// @Success      200       {object}  dto.DashboardResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse      "Not Found"
// @Failure      502       {object}  dto.ErrorResponse      "Upstream Error"
// @Failure      500       {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/dashboard/{category}/{dataset}/{type} [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	// ─── Path ────────────────────────────────────────────────
	p, ok := h.routeParams(c)
	if !ok {
		return
	}

	// ─── Query ───────────────────────────────────────────────
	period, err := h.period(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid period", err)
		return
	}
	others := true
	if s := c.Query("others"); s != "" {
		others, err = strconv.ParseBool(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid others flag", err)
			return
		}
	}
	var groupBy chart.GroupKey
	if s := c.Query("group_by"); s != "" {
		groupBy, err = chart.ParseGroupKey(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid group_by", err)
			return
		}
	}

	// ─── Service ─────────────────────────────────────────────
	d, err := h.svc.Dashboard(c.Request.Context(), service.Query{
		Route:     p,
		Selection: selection(c),
		Period:    period,
		Others:    others,
		GroupBy:   groupBy,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(d))
}

// GetSelectors handles GET /api/v1/selectors/{category}/{dataset}/{type}.
//
// GetSelectors godoc
// @Summary      Get default selectors for a route
// @Tags         dashboard
// @Produce      json
// @Param        category  path      string  true   "Category" example(amm)
// @Param        dataset   path      string  true   "Dataset" example(volume)
// @Param        type      path      string  false  "Selector type" example(asset)
// @Success      200       {object}  dto.SelectorsResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse      "Not Found"
// @Router       /api/v1/selectors/{category}/{dataset}/{type} [get]
func (h *Handler) GetSelectors(c *gin.Context) {
	p, ok := h.routeParams(c)
	if !ok {
		return
	}
	sels, err := h.svc.Selectors(p)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SelectorsResponse{
		Route:     p,
		Group:     selector.Group(sels),
		Selectors: sels,
	})
}

// GetSummary handles GET /api/v1/summary/{category}.
//
// GetSummary godoc
// @Summary      Get totals of every dataset in a category
// @Description  Fetches the default dashboard of each dataset concurrently and returns their totals
// @Tags         dashboard
// @Produce      json
// @Param        category  path      string  true   "Category" example(lending)
// @Param        days      query     int     false  "Window length in days, ending yesterday" example(30)
// @Param        from      query     string  false  "Window start (RFC 3339)"
// @Param        to        query     string  false  "Window end (RFC 3339)"
// @Success      200       {object}  dto.SummaryResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse    "Not Found"
// @Failure      502       {object}  dto.ErrorResponse    "Upstream Error"
// @Router       /api/v1/summary/{category} [get]
func (h *Handler) GetSummary(c *gin.Context) {
	period, err := h.period(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid period", err)
		return
	}
	category := strings.ToLower(strings.TrimSpace(c.Param("category")))

	s, err := h.svc.Summary(c.Request.Context(), category, period)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSummaryResponse(s))
}

// GetCatalog handles GET /api/v1/catalog.
//
// GetCatalog godoc
// @Summary      Get display names and colors
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse  "Success"
// @Router       /api/v1/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	cat := h.svc.Catalog()
	c.JSON(http.StatusOK, dto.CatalogResponse{
		Categories:   cat.Categories(),
		DefaultColor: cat.DefaultColor,
		Names:        cat.Names,
		Colors:       cat.Colors,
	})
}

// abortWithServiceError maps service errors to HTTP statuses.
//
//   - unknown category                        -> 404
//   - bad dataset, type, selection or group   -> 400
//   - metrics API failures                    -> 502
//   - anything else                           -> 500
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory):
		middleware.AbortWithError(c, http.StatusNotFound, "unknown category", err)
	case errors.Is(err, route.ErrUnknownDataset),
		errors.Is(err, catalog.ErrUnknownSelectorType),
		errors.Is(err, selector.ErrInvalidSelection),
		errors.Is(err, chart.ErrUnknownGroupKey),
		errors.Is(err, dates.ErrInvalidPeriod):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, service.ErrUpstream):
		middleware.AbortWithError(c, http.StatusBadGateway, "failed to fetch metrics", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build dashboard", err)
	}
}
