package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/scrape/browser"
	"github.com/nulzo/provider-metrics-api/internal/store"
)

// Outcome records what happened to one model during a run.
type Outcome struct {
	ModelID string            `json:"model_id"`
	Status  string            `json:"status"` // updated, unchanged, failed
	Reason  store.MergeReason `json:"reason,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Report summarizes a scrape run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Updated    []Outcome `json:"updated"`
	Unchanged  int       `json:"unchanged"`
	Failed     []Outcome `json:"failed"`
}

// Runner walks the model set, extracts provider data per model, and merges
// it into the store. The store is saved after every changed model, so an
// interrupted run loses at most the model in flight.
type Runner struct {
	logger    *zap.Logger
	store     *store.Store
	fetcher   browser.Fetcher
	extractor *Extractor
	limiter   *rate.Limiter
	baseURL   string
}

// NewRunner wires a runner. baseURL is the aggregator site root the model
// page URLs hang off of. limiter paces page fetches; pass nil for no pacing.
func NewRunner(logger *zap.Logger, st *store.Store, fetcher browser.Fetcher, extractor *Extractor, limiter *rate.Limiter, baseURL string) *Runner {
	return &Runner{
		logger:    logger,
		store:     st,
		fetcher:   fetcher,
		extractor: extractor,
		limiter:   limiter,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// RefreshAll scrapes every model currently in the store.
func (r *Runner) RefreshAll(ctx context.Context) (*Report, error) {
	return r.run(ctx, r.store.ModelIDs())
}

// ScrapeURL scrapes the single model behind pageURL, inserting it into the
// store if it is new.
func (r *Runner) ScrapeURL(ctx context.Context, pageURL string) (*Report, error) {
	modelID, err := ModelIDFromURL(pageURL)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, []string{modelID})
}

func (r *Runner) run(ctx context.Context, modelIDs []string) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	r.logger.Info("Scrape run starting",
		zap.String("run_id", report.RunID),
		zap.Int("models", len(modelIDs)))

	for _, modelID := range modelIDs {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				report.FinishedAt = time.Now().UTC()
				return report, err
			}
		} else if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now().UTC()
			return report, err
		}

		outcome := r.scrapeModel(ctx, modelID)
		switch outcome.Status {
		case "updated":
			report.Updated = append(report.Updated, outcome)
		case "failed":
			report.Failed = append(report.Failed, outcome)
		default:
			report.Unchanged++
		}
	}

	report.FinishedAt = time.Now().UTC()
	r.logger.Info("Scrape run finished",
		zap.String("run_id", report.RunID),
		zap.Int("updated", len(report.Updated)),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}

// scrapeModel is the per-model boundary: no fault inside it reaches the
// run loop.
func (r *Runner) scrapeModel(ctx context.Context, modelID string) Outcome {
	log := r.logger.With(zap.String("model_id", modelID))
	log.Info("Processing model")

	providers, err := r.fetchProviders(ctx, modelID)
	if err != nil {
		log.Warn("Skipping model", zap.Error(err))
		return Outcome{ModelID: modelID, Status: "failed", Error: err.Error()}
	}

	previous, existed := r.store.Get(modelID)
	result := r.store.DiffAndMerge(modelID, providers)
	if !result.Changed {
		log.Info("No changes in provider data")
		return Outcome{ModelID: modelID, Status: "unchanged"}
	}

	// Persist immediately so an interruption loses at most this model.
	// A failed save undoes the merge; the snapshot must never hold data
	// the document does not.
	if err := r.store.Save(); err != nil {
		r.store.Restore(modelID, previous, existed)
		log.Error("Failed to save store after merge", zap.Error(err))
		return Outcome{ModelID: modelID, Status: "failed", Reason: result.Reason, Error: err.Error()}
	}

	log.Info("Updated provider data", zap.String("reason", string(result.Reason)))
	return Outcome{ModelID: modelID, Status: "updated", Reason: result.Reason}
}

func (r *Runner) fetchProviders(ctx context.Context, modelID string) (providers []domain.Provider, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			providers, err = nil, fmt.Errorf("extraction panic: %v", rec)
		}
	}()

	page, err := r.fetcher.Fetch(ctx, r.PageURL(modelID))
	if err != nil {
		return nil, err
	}
	defer page.Close()

	return r.extractor.Providers(ctx, page), nil
}

// PageURL builds the detail-page URL for a model id.
func (r *Runner) PageURL(modelID string) string {
	return r.baseURL + "/" + modelID
}

// ModelIDFromURL derives the "vendor/model-name" id from a model page URL.
func ModelIDFromURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("scrape: invalid model URL %q: %w", pageURL, err)
	}

	path := strings.Trim(u.Path, "/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("scrape: URL %q does not name a vendor/model page", pageURL)
	}
	return parts[0] + "/" + parts[1], nil
}
