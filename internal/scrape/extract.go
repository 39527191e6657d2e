package scrape

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/scrape/browser"
)

// Selectors for the aggregator's model detail page. These track the site's
// markup and break when it changes; every miss degrades to the sentinel
// instead of failing the run.
const (
	providersTabName     = "Providers"
	providerListSelector = "div.flex.flex-col.gap-3"
	providerRowSelector  = `tr.flex.flex-col.py-4.border-t.border-border\/50`
	providerNameSelector = `a.text-muted-foreground\/80`
	metricCellSelector   = "div.flex.flex-wrap.items-center.justify-between.gap-8 div.text-lg"
)

// metricColumns fixes which metric each positional cell carries. Extraction
// only assigns values when the cell count matches exactly, so a markup
// change cannot silently shift prices into latency.
var metricColumns = []func(m *domain.Metrics, text string){
	func(m *domain.Metrics, t string) { m.ContextLength = parseCount(t) },
	func(m *domain.Metrics, t string) { m.MaxOutputTokens = parseCount(t) },
	func(m *domain.Metrics, t string) { m.InputPricePerMillion = parsePrice(t) },
	func(m *domain.Metrics, t string) { m.OutputPricePerMillion = parsePrice(t) },
	func(m *domain.Metrics, t string) { m.LatencySeconds = parseLatency(t) },
	func(m *domain.Metrics, t string) { m.ThroughputTokensPerSecond = parseThroughput(t) },
}

// Extractor pulls the provider table off a fetched model page.
type Extractor struct {
	logger      *zap.Logger
	waitTimeout time.Duration
}

func NewExtractor(logger *zap.Logger, waitTimeout time.Duration) *Extractor {
	if waitTimeout <= 0 {
		waitTimeout = 5 * time.Second
	}
	return &Extractor{logger: logger, waitTimeout: waitTimeout}
}

// Providers returns the ordered provider records on page. The result is
// never empty: a model without a Providers tab, an invisible provider
// section, or a table with no readable rows all yield the single sentinel
// record. That is a confirmed "no providers" answer, not an error.
func (e *Extractor) Providers(ctx context.Context, page browser.Page) []domain.Provider {
	if err := page.ClickTab(ctx, providersTabName); err != nil {
		e.logger.Info("No Providers tab, model has no provider selection")
		return []domain.Provider{domain.Sentinel()}
	}

	if err := page.WaitVisible(ctx, providerListSelector, e.waitTimeout); err != nil {
		e.logger.Warn("Provider section not visible after activating tab", zap.Error(err))
		return []domain.Provider{domain.Sentinel()}
	}

	rows, err := page.Rows(ctx, providerRowSelector)
	if err != nil {
		e.logger.Warn("Failed to query provider rows", zap.Error(err))
		return []domain.Provider{domain.Sentinel()}
	}
	e.logger.Debug("Found provider rows", zap.Int("count", len(rows)))

	providers := make([]domain.Provider, 0, len(rows))
	for i, row := range rows {
		provider, err := e.extractRow(ctx, row)
		if err != nil {
			e.logger.Warn("Skipping unreadable provider row", zap.Int("row", i), zap.Error(err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return []domain.Provider{domain.Sentinel()}
	}
	return providers
}

func (e *Extractor) extractRow(ctx context.Context, row browser.Row) (domain.Provider, error) {
	var provider domain.Provider

	name, err := row.Text(ctx, providerNameSelector)
	if err == nil {
		normalized := normalizeName(name)
		provider.Name = &normalized
	} else if !errors.Is(err, browser.ErrNotFound) {
		return domain.Provider{}, err
	}

	cells, err := row.Texts(ctx, metricCellSelector)
	if err != nil {
		return domain.Provider{}, err
	}

	// Wrong cell count means the layout shifted; keep the name and leave
	// every metric nil rather than guess at positions.
	if len(cells) != len(metricColumns) {
		e.logger.Warn("Unexpected metric cell count, leaving metrics unset",
			zap.Int("got", len(cells)),
			zap.Int("want", len(metricColumns)))
		return provider, nil
	}

	for i, assign := range metricColumns {
		assign(&provider.Metrics, cells[i])
	}
	return provider, nil
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}
