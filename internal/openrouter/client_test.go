package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/provider-metrics-api/internal/httpclient"
)

func TestListModels(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"anthropic/claude-3-sonnet","name":"Claude 3 Sonnet"},{"id":"openai/gpt-4","name":"GPT-4"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk-or-test")
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-or-test", gotAuth)
	require.Len(t, models, 2)
	assert.Equal(t, "anthropic/claude-3-sonnet", models[0].ID)
}

func TestListModels_MissingKey(t *testing.T) {
	client := NewClient("http://localhost:0", "")

	_, err := client.ListModels(context.Background())
	assert.Error(t, err)
}

func TestListModels_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk-or-bad")
	_, err := client.ListModels(context.Background())
	require.Error(t, err)

	var upstream *httpclient.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
}
