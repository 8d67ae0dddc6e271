package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/defipulse/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("code=%d", w.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("counter delta=%v, want 2", got)
	}
}

func TestMetrics_UnknownPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unknown", "404")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("counter delta=%v, want 1", got)
	}
}
