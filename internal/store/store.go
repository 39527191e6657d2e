package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
)

// ParseError means the persisted document exists but is not valid JSON.
// This is fatal for the run: the store never autocorrects corrupt state.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("store: corrupt document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MergeReason explains why DiffAndMerge reported a change.
type MergeReason string

const (
	ReasonAdded    MergeReason = "added"
	ReasonModified MergeReason = "modified"
	ReasonNowEmpty MergeReason = "now-empty"
)

// MergeResult is the outcome of a single DiffAndMerge call.
type MergeResult struct {
	Changed bool
	Reason  MergeReason
}

// Store is the full model → provider-list mapping, loaded wholesale from a
// single JSON document. It is not safe for concurrent writers; scrape runs
// and the serving process are separate executions.
type Store struct {
	path   string
	logger *zap.Logger
	models map[string][]domain.Provider
}

// Open reads the document at path. A missing file yields an empty store; a
// file that exists but fails to decode yields a *ParseError.
func Open(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
		models: make(map[string][]domain.Provider),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("No existing store document, starting empty", zap.String("path", path))
			return s, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.models); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	logger.Info("Store loaded", zap.String("path", path), zap.Int("models", len(s.models)))
	return s, nil
}

// Path returns the on-disk location of the document.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of models in the store.
func (s *Store) Len() int {
	return len(s.models)
}

// ModelIDs returns every model id in the store, sorted.
func (s *Store) ModelIDs() []string {
	ids := make([]string, 0, len(s.models))
	for id := range s.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the provider sequence for modelID, or ok=false if unknown.
func (s *Store) Get(modelID string) ([]domain.Provider, bool) {
	providers, ok := s.models[modelID]
	return providers, ok
}

// DiffAndMerge compares providers against the stored sequence for modelID.
// The comparison is order-sensitive and value-exact, nil fields included.
// On any difference (a new model counts as one) the in-memory entry is
// replaced and the result reports what changed; otherwise nothing moves.
func (s *Store) DiffAndMerge(modelID string, providers []domain.Provider) MergeResult {
	// Every entry carries at least the sentinel record.
	if len(providers) == 0 {
		providers = []domain.Provider{domain.Sentinel()}
	}

	existing, known := s.models[modelID]
	if known && domain.ProvidersEqual(existing, providers) {
		return MergeResult{Changed: false}
	}

	reason := ReasonModified
	switch {
	case !known:
		reason = ReasonAdded
	case isSentinelOnly(providers) && !isSentinelOnly(existing):
		reason = ReasonNowEmpty
	}

	s.models[modelID] = providers
	return MergeResult{Changed: true, Reason: reason}
}

// Restore puts a model's entry back to a pre-merge state. Callers use it to
// undo a DiffAndMerge whose corresponding Save failed, so the in-memory
// snapshot never drifts ahead of the on-disk document.
func (s *Store) Restore(modelID string, providers []domain.Provider, existed bool) {
	if !existed {
		delete(s.models, modelID)
		return
	}
	s.models[modelID] = providers
}

// Save serializes the whole store to disk. The document is written to a
// temp file in the same directory and renamed over the old one, so a crash
// mid-write leaves the previous document intact.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.models, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename %s: %w", tmp.Name(), err)
	}

	return nil
}

func isSentinelOnly(providers []domain.Provider) bool {
	return len(providers) == 1 && providers[0].IsSentinel()
}
