package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/six-degrees/internal/cache"
	"github.com/pfrederiksen/six-degrees/internal/graph"
	"github.com/pfrederiksen/six-degrees/internal/output"
	"github.com/pfrederiksen/six-degrees/internal/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	g := graph.New()
	g.AddLinks("Kevin Bacon", "Footloose", "Philadelphia")
	g.AddLinks("Philadelphia", "Benjamin Franklin")
	g.AddLinks("Benjamin Franklin", "Physics")
	g.AddLinks("Physics", "Albert Einstein")
	g.AddLinks("Albert Einstein", "Princeton University")
	g.AddLinks("Princeton University", "Kevin Bacon")

	store := cache.NewMemory()
	require.NoError(t, store.Put(context.Background(), cache.Links("en", "seed"), []string{"x"}))

	engine := search.NewEngine(g, search.DefaultOptions())
	return NewRouter(&RouterDeps{
		Engine:   engine,
		Checker:  search.NewChecker(engine, search.WithSaver(store)),
		Store:    store,
		Language: "en",
		Version:  "test-v1",
	})
}

func doGet(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doGet(testRouter(t), "/api/v1/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var body healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test-v1", body.Version)
	assert.Equal(t, "ok", body.Cache)
	assert.Equal(t, 1, body.CacheEntries)
}

func TestPathFound(t *testing.T) {
	w := doGet(testRouter(t), "/api/v1/path?from=Kevin+Bacon&to=https://en.wikipedia.org/wiki/Albert_Einstein")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body pathResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "found", body.State)
	assert.Equal(t, "Albert Einstein", body.To)
	assert.Equal(t, []string{"Kevin Bacon", "Philadelphia", "Benjamin Franklin", "Physics", "Albert Einstein"}, body.Path)
	assert.Equal(t, 4, body.Hops)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Kevin_Bacon", body.URLs[0])
	assert.NotEmpty(t, body.RunID)
}

func TestPathExhausted(t *testing.T) {
	w := doGet(testRouter(t), "/api/v1/path?from=Footloose&to=Physics")
	require.Equal(t, http.StatusOK, w.Code)

	var body pathResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "exhausted", body.State)
	assert.Empty(t, body.Path)
	assert.Zero(t, body.Hops)
}

func TestPathBadRequest(t *testing.T) {
	router := testRouter(t)
	tests := []struct {
		name   string
		target string
	}{
		{"missing to", "/api/v1/path?from=Physics"},
		{"missing both", "/api/v1/path"},
		{"reserved character", "/api/v1/path?from=a%7Cb&to=Physics"},
		{"mixed wikis", "/api/v1/path?from=https://de.wikipedia.org/wiki/Physik&to=Physics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(router, tt.target)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, ErrCodeInvalidRequest, body["code"])
			assert.NotEmpty(t, body["request_id"])
		})
	}
}

func TestDegrees(t *testing.T) {
	w := doGet(testRouter(t), "/api/v1/degrees?a=Kevin+Bacon&b=Albert+Einstein")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body output.ReportJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Legs, 2)
	assert.Equal(t, search.DefaultMaxDepth, body.MaxDepth)

	assert.True(t, body.Legs[0].Found)
	assert.Equal(t, "Kevin Bacon", body.Legs[0].From)
	assert.Equal(t, 4, body.Legs[0].Hops)

	assert.True(t, body.Legs[1].Found)
	assert.Equal(t, []string{"Albert Einstein", "Princeton University", "Kevin Bacon"}, body.Legs[1].Path)
}

func TestDegreesBlankTitle(t *testing.T) {
	w := doGet(testRouter(t), "/api/v1/degrees?a=%20&b=Physics")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)
	doGet(router, "/api/v1/health")

	w := doGet(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "six_degrees_http_requests_total")
}
