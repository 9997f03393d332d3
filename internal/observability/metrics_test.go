package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, metrics)
	require.Contains(t, body, `qaforge_http_requests_total{code="418",route="/test"} 1`)
	require.Contains(t, body, `qaforge_http_request_duration_seconds_bucket{route="/test"`)
}

func TestInstrumentStoreCountsOperations(t *testing.T) {
	metrics := NewMetrics()
	store := metrics.InstrumentStore(memstore.New())
	ctx := context.Background()

	doc, err := store.Insert(ctx, catalog.Projects, docstore.Document{"name": "Alpha"})
	require.NoError(t, err)
	_, err = store.Get(ctx, catalog.Projects, doc.ID())
	require.NoError(t, err)
	_, err = store.Get(ctx, catalog.Projects, docstore.NewID())
	require.ErrorIs(t, err, docstore.ErrNotFound)

	body := scrape(t, metrics)
	require.Contains(t, body, `qaforge_store_operations_total{collection="projects",op="insert",status="ok"} 1`)
	require.Contains(t, body, `qaforge_store_operations_total{collection="projects",op="get",status="ok"} 1`)
	require.Contains(t, body, `qaforge_store_operations_total{collection="projects",op="get",status="not_found"} 1`)
	require.True(t, strings.Contains(body, "qaforge_store_operation_duration_seconds_bucket"))
}

func TestNilMetricsPassThrough(t *testing.T) {
	var metrics *Metrics
	store := memstore.New()
	require.Same(t, docstore.Store(store), metrics.InstrumentStore(store))

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
