package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.POST("/hook/:token", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/statusonly", func(c *gin.Context) {
		// 204 without body leaves Writer.Size() at -1; the size histogram
		// must skip it.
		c.Status(http.StatusNoContent)
	})

	// Baselines guard against other tests touching the shared collectors.
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("POST", "/hook/:token", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hook/secret-token", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /hook -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /does-not-exist -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statusonly", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("GET /statusonly -> %d", w.Code)
	}

	// The route pattern, not the raw URL, is the path label, so the token
	// never reaches Prometheus.
	gotOK := testutil.ToFloat64(httpReqs.WithLabelValues("POST", "/hook/:token", "200"))
	if gotOK != baseOK+1 {
		t.Fatalf("counter /hook/:token 200 = %v; want %v", gotOK, baseOK+1)
	}

	got404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))
	if got404 != base404+1 {
		t.Fatalf("counter 404 fallback = %v; want %v", got404, base404+1)
	}

	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
