// Package openrouter is a thin client for the aggregator's data API, used
// to discover the model set. Page scraping does not go through here.
package openrouter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nulzo/provider-metrics-api/internal/httpclient"
)

// Model is the slice of the aggregator's model object this service needs.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	apiURL string
	apiKey string
	http   httpclient.HTTPClient
}

// NewClient builds a client for the data API rooted at apiURL. The API key
// is required for authenticated endpoints.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ListModels fetches the full model catalog.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	if c.apiKey == "" {
		return nil, errors.New("openrouter: OPENROUTER_API_KEY is not set")
	}

	var response struct {
		Data []Model `json:"data"`
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
	if err := httpclient.SendRequest(ctx, c.http, http.MethodGet, c.apiURL+"/models", headers, nil, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}
