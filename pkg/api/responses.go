// Package api holds the wire types of the query API. Every response carries
// a success marker; a null payload with success=true means "valid request,
// no data", which is distinct from a client error.
package api

import "github.com/nulzo/provider-metrics-api/internal/core/domain"

type ModelsResponse struct {
	Success  bool     `json:"success"`
	Count    int      `json:"count"`
	ModelIDs []string `json:"model_ids"`
}

type SearchResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Matches []string `json:"matches"` // null when nothing matched
}

type ProvidersResponse struct {
	Success   bool              `json:"success"`
	ModelID   string            `json:"model_id"`
	Providers []domain.Provider `json:"providers"` // null when the model id is unknown
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewError builds the standard failure body.
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}
