// Package catalog is the read-only query surface over a loaded store
// snapshot. Nothing here mutates the store, so concurrent reads behind the
// HTTP layer are safe as long as no scrape run shares the process.
package catalog

import (
	"strings"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// ListModelIDs returns every known model id, sorted. An empty store yields
// an empty slice, not an error.
func (s *Service) ListModelIDs() []string {
	return s.store.ModelIDs()
}

// Search returns the model ids containing query, case-insensitively.
// A nil result means "no matches"; the caller decides how to report it.
func (s *Service) Search(query string) []string {
	query = strings.ToLower(query)

	var matches []string
	for _, id := range s.store.ModelIDs() {
		if strings.Contains(strings.ToLower(id), query) {
			matches = append(matches, id)
		}
	}
	return matches
}

// Providers returns the stored provider sequence for an exact model id,
// or ok=false when the id is unknown. Unknown is valid data, not a fault.
func (s *Service) Providers(modelID string) ([]domain.Provider, bool) {
	return s.store.Get(modelID)
}
