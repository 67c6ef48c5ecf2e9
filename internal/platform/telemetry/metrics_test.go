package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newEcho(m *Metrics) *echo.Echo {
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/patients/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream")
	})
	e.GET("/metrics", m.Handler())
	return e
}

func do(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// requestCount reads the histogram sample count for one label set.
func requestCount(t *testing.T, m *Metrics, method, route string, status int) uint64 {
	t.Helper()
	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	want := map[string]string{"method": method, "route": route, "status_code": strconv.Itoa(status)}
	for _, mf := range families {
		if mf.GetName() != "http_server_request_duration_seconds" {
			continue
		}
	metrics:
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if want[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return metric.GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()
	e := newEcho(m)

	do(e, "/api/v1/patients/1")
	do(e, "/api/v1/patients/2")

	if got := requestCount(t, m, http.MethodGet, "/api/v1/patients/:id", http.StatusOK); got != 2 {
		t.Errorf("expected 2 observations for the route pattern, got %d", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("expected one series for two ids on one route, got %d", got)
	}
}

func TestMiddleware_RecordsErrorStatus(t *testing.T) {
	m := New()
	e := newEcho(m)

	if rec := do(e, "/boom"); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if got := requestCount(t, m, http.MethodGet, "/boom", http.StatusBadGateway); got != 1 {
		t.Errorf("expected 1 observation with status 502, got %d", got)
	}
	if got := testutil.ToFloat64(m.active); got != 0 {
		t.Errorf("expected no active requests after completion, got %g", got)
	}
}

func TestRecordOutcome_Concurrent(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordOutcome("verify_insurance", "success")
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(m.outcomes.WithLabelValues("verify_insurance", "success")); got != 800 {
		t.Errorf("expected 800, got %g", got)
	}
	if got := testutil.CollectAndCount(m.outcomes); got != 1 {
		t.Errorf("expected a single outcome series, got %d", got)
	}
}

func TestHandler_PrometheusText(t *testing.T) {
	m := New()
	e := newEcho(m)
	do(e, "/api/v1/patients/3")
	m.RecordOutcome("care_coordination", "mail")

	rec := do(e, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain content type, got %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"# TYPE http_server_request_duration_seconds histogram",
		`http_server_request_duration_seconds_count{method="GET",route="/api/v1/patients/:id",status_code="200"} 1`,
		`le="+Inf"`,
		"# TYPE http_server_active_requests gauge",
		`assistant_outcomes_total{operation="care_coordination",outcome="mail"} 1`,
		"# TYPE go_goroutines gauge",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q\n%s", want, body)
		}
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordOutcome("stop_process", "stopped")

	if got := testutil.ToFloat64(b.outcomes.WithLabelValues("stop_process", "stopped")); got != 0 {
		t.Errorf("expected a fresh registry per instance, got %g", got)
	}
}
