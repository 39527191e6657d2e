package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/catalog"
	"github.com/nulzo/provider-metrics-api/internal/config"
	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "models.json"), zap.NewNop())
	require.NoError(t, err)

	name := "deepinfra"
	ctxLen := int64(64000)
	st.DiffAndMerge("anthropic/claude-3-sonnet", []domain.Provider{{
		Name:    &name,
		Metrics: domain.Metrics{ContextLength: &ctxLen},
	}})
	st.DiffAndMerge("openai/gpt-4", []domain.Provider{domain.Sentinel()})

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "8080", Env: "test"},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}

	return New(cfg, zap.NewNop(), catalog.NewService(st))
}

func doGet(t *testing.T, srv *Server, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "every response must be well-formed JSON")
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := doGet(t, srv, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestListModels(t *testing.T) {
	srv := newTestServer(t)

	status, body := doGet(t, srv, "/api/models")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t,
		[]interface{}{"anthropic/claude-3-sonnet", "openai/gpt-4"},
		body["model_ids"])
}

func TestSearchModels(t *testing.T) {
	srv := newTestServer(t)

	status, body := doGet(t, srv, "/api/models/search?q=sonnet")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, []interface{}{"anthropic/claude-3-sonnet"}, body["matches"])
}

func TestSearchModels_NoMatches(t *testing.T) {
	srv := newTestServer(t)

	status, body := doGet(t, srv, "/api/models/search?q=mistral")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.Nil(t, body["matches"], "zero matches must serialize as null")
}

func TestSearchModels_MissingQuery(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/models/search", "/api/models/search?q="} {
		status, body := doGet(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, false, body["success"], path)
		assert.NotEmpty(t, body["error"], path)
	}
}

func TestGetProviders(t *testing.T) {
	srv := newTestServer(t)

	status, body := doGet(t, srv, "/api/get_providers?q=anthropic/claude-3-sonnet")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "anthropic/claude-3-sonnet", body["model_id"])

	providers, ok := body["providers"].([]interface{})
	require.True(t, ok)
	require.Len(t, providers, 1)

	first, ok := providers[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "deepinfra", first["name"])

	metrics, ok := first["metrics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(64000), metrics["context_length"])
	assert.Nil(t, metrics["max_output_tokens"], "unknown metrics must serialize as null")
}

func TestGetProviders_UnknownModel(t *testing.T) {
	srv := newTestServer(t)

	// Valid request for absent data: success with a null payload
	status, body := doGet(t, srv, "/api/get_providers?q=unknown/model")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["providers"])
}

func TestGetProviders_MissingQuery(t *testing.T) {
	srv := newTestServer(t)

	status, body := doGet(t, srv, "/api/get_providers")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}
