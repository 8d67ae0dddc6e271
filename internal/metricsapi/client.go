package metricsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/defipulse/internal/dates"
	"github.com/guttosm/defipulse/internal/domain/models"
	"github.com/guttosm/defipulse/internal/logger"
	"github.com/guttosm/defipulse/internal/metrics"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
)

const (
	ProductionEndpoint  = "https://api.magmatic.xyz"
	DevelopmentEndpoint = "http://localhost:3000"
)

// StatusError is returned when the metrics API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("metrics api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("metrics api: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Fetcher is what the dashboard service needs from the metrics API.
type Fetcher interface {
	GetData(ctx context.Context, p route.Params, selectors []selector.Selector, period dates.Period) ([]models.DataRow, error)
}

// Client calls the metrics API. It issues exactly one GET per call and never retries.
type Client struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewClient builds a Client.
//
// Parameters:
//   - endpoint: base URL, e.g. ProductionEndpoint.
//   - token: static bearer token sent with every request.
//   - timeout: per-request timeout; 0 means no client-side timeout (the caller's context still applies).
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
	}
}

// GetData fetches the rows for a route, selection, and period.
//
// Behavior:
//   - Builds the query with BuildURL.
//   - Sends a single GET with the bearer token.
//   - Decodes the body as a JSON array of DataRow.
//
// Returns:
//   - []models.DataRow: rows as returned by the API.
//   - error: transport, status (*StatusError), or decode failures.
func (c *Client) GetData(ctx context.Context, p route.Params, selectors []selector.Selector, period dates.Period) ([]models.DataRow, error) {
	u, err := BuildURL(c.endpoint, p, selectors, period)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	labels := []string{p.Category, string(p.Dataset)}
	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(p.Category, string(p.Dataset), "error").Inc()
		return nil, fmt.Errorf("metrics api %s: %w", p.Path(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.UpstreamRequestsTotal.WithLabelValues(p.Category, string(p.Dataset), strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var rows []models.DataRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode metrics api response: %w", err)
	}

	metrics.UpstreamRows.WithLabelValues(labels...).Observe(float64(len(rows)))
	logger.L().Debug().
		Str("route", p.Path()).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("metrics_api_fetch")

	return rows, nil
}

// BuildURL composes {endpoint}/v1/{category}/{dataset}/{type} and its query string.
//
// Query parameters:
//   - chains: the selected chain, or every chain option when chain is the group-by.
//   - start, end: period bounds in epoch seconds.
//   - resolution: bucket chosen from the period length.
//   - one parameter per selector: the group-by selector sends all its option values
//     joined by commas (without "all"); every other selector sends its selection.
func BuildURL(endpoint string, p route.Params, selectors []selector.Selector, period dates.Period) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(endpoint, "/") + "/v1/" + url.PathEscape(p.Category) + "/" + url.PathEscape(string(p.Dataset)) + "/" + url.PathEscape(p.Type))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	group := selector.Group(selectors)
	ts := dates.TimestampsFromPeriod(period)

	q := url.Values{}
	q.Set("chains", resolveChains(selectors, group))
	q.Set("start", strconv.FormatInt(ts.Start, 10))
	q.Set("end", strconv.FormatInt(ts.End, 10))
	q.Set("resolution", string(dates.ResolutionByPeriod(period)))
	for _, s := range selectors {
		if s.ID == group && s.Selected == selector.All {
			q.Set(s.ID, strings.Join(s.Values(), ","))
			continue
		}
		q.Set(s.ID, s.Selected)
	}
	u.RawQuery = q.Encode()
	return u, nil
}

func resolveChains(selectors []selector.Selector, group string) string {
	if group == selector.ChainID {
		if s, ok := selector.ByID(selectors, selector.ChainID); ok {
			return strings.Join(s.Values(), ",")
		}
	}
	return selector.Chain(selectors)
}
