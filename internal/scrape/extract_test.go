package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/scrape/browser"
)

// fakeRow is a provider table row backed by canned cell text.
type fakeRow struct {
	name  *string  // nil means no name element
	cells []string // metric cell texts
}

func (r *fakeRow) Text(_ context.Context, selector string) (string, error) {
	if selector != providerNameSelector {
		return "", browser.ErrNotFound
	}
	if r.name == nil {
		return "", browser.ErrNotFound
	}
	return *r.name, nil
}

func (r *fakeRow) Texts(_ context.Context, selector string) ([]string, error) {
	if selector != metricCellSelector {
		return nil, nil
	}
	return r.cells, nil
}

// fakePage scripts the affordances of a model detail page.
type fakePage struct {
	hasTab         bool
	sectionVisible bool
	rows           []browser.Row
	closed         bool
}

func (p *fakePage) ClickTab(_ context.Context, name string) error {
	if !p.hasTab {
		return browser.ErrNotFound
	}
	return nil
}

func (p *fakePage) WaitVisible(_ context.Context, selector string, timeout time.Duration) error {
	if !p.sectionVisible {
		return errors.New("timed out waiting for selector")
	}
	return nil
}

func (p *fakePage) Rows(_ context.Context, selector string) ([]browser.Row, error) {
	return p.rows, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

func fullRow(name string) *fakeRow {
	return &fakeRow{
		name:  str(name),
		cells: []string{"64K", "8K", "$0.14", "$0.28", "1.23s", "67.37t/s"},
	}
}

func newTestExtractor() *Extractor {
	return NewExtractor(zap.NewNop(), time.Second)
}

func TestExtract_FullRows(t *testing.T) {
	page := &fakePage{
		hasTab:         true,
		sectionVisible: true,
		rows:           []browser.Row{fullRow("DeepInfra"), fullRow("Together AI")},
	}

	providers := newTestExtractor().Providers(context.Background(), page)
	require.Len(t, providers, 2)

	first := providers[0]
	require.NotNil(t, first.Name)
	assert.Equal(t, "deepinfra", *first.Name)
	require.NotNil(t, first.Metrics.ContextLength)
	assert.Equal(t, int64(64000), *first.Metrics.ContextLength)
	require.NotNil(t, first.Metrics.MaxOutputTokens)
	assert.Equal(t, int64(8000), *first.Metrics.MaxOutputTokens)
	require.NotNil(t, first.Metrics.InputPricePerMillion)
	assert.InDelta(t, 0.14, *first.Metrics.InputPricePerMillion, 1e-9)
	require.NotNil(t, first.Metrics.OutputPricePerMillion)
	assert.InDelta(t, 0.28, *first.Metrics.OutputPricePerMillion, 1e-9)
	require.NotNil(t, first.Metrics.LatencySeconds)
	assert.InDelta(t, 1.23, *first.Metrics.LatencySeconds, 1e-9)
	require.NotNil(t, first.Metrics.ThroughputTokensPerSecond)
	assert.InDelta(t, 67.37, *first.Metrics.ThroughputTokensPerSecond, 1e-9)

	// Display order preserved, names normalized
	require.NotNil(t, providers[1].Name)
	assert.Equal(t, "together_ai", *providers[1].Name)
}

func TestExtract_NoProvidersTab(t *testing.T) {
	page := &fakePage{hasTab: false}

	providers := newTestExtractor().Providers(context.Background(), page)

	// Exactly one sentinel record, not an empty sequence and not an error.
	require.Len(t, providers, 1)
	assert.True(t, providers[0].IsSentinel())
}

func TestExtract_SectionNeverVisible(t *testing.T) {
	page := &fakePage{hasTab: true, sectionVisible: false}

	providers := newTestExtractor().Providers(context.Background(), page)
	require.Len(t, providers, 1)
	assert.True(t, providers[0].IsSentinel())
}

func TestExtract_NoRows(t *testing.T) {
	page := &fakePage{hasTab: true, sectionVisible: true, rows: nil}

	providers := newTestExtractor().Providers(context.Background(), page)
	require.Len(t, providers, 1)
	assert.True(t, providers[0].IsSentinel())
}

func TestExtract_WrongCellCountKeepsNameOnly(t *testing.T) {
	row := &fakeRow{name: str("Lambda"), cells: []string{"64K", "$0.14"}}
	page := &fakePage{hasTab: true, sectionVisible: true, rows: []browser.Row{row}}

	providers := newTestExtractor().Providers(context.Background(), page)
	require.Len(t, providers, 1)

	// With a shifted layout nothing gets assigned, rather than misassigned.
	require.NotNil(t, providers[0].Name)
	assert.Equal(t, "lambda", *providers[0].Name)
	assert.Equal(t, domain.Metrics{}, providers[0].Metrics)
}

func TestExtract_UnparseableCellsBecomeNil(t *testing.T) {
	row := &fakeRow{
		name:  str("novita"),
		cells: []string{"64K", "--", "$0.14", "n/a", "1.2s", "??"},
	}
	page := &fakePage{hasTab: true, sectionVisible: true, rows: []browser.Row{row}}

	providers := newTestExtractor().Providers(context.Background(), page)
	require.Len(t, providers, 1)

	m := providers[0].Metrics
	assert.NotNil(t, m.ContextLength)
	assert.Nil(t, m.MaxOutputTokens)
	assert.NotNil(t, m.InputPricePerMillion)
	assert.Nil(t, m.OutputPricePerMillion)
	assert.NotNil(t, m.LatencySeconds)
	assert.Nil(t, m.ThroughputTokensPerSecond)
}

func TestExtract_MissingNameKeepsMetrics(t *testing.T) {
	row := &fakeRow{name: nil, cells: []string{"64K", "8K", "$0.14", "$0.28", "1.23s", "67.37t/s"}}
	page := &fakePage{hasTab: true, sectionVisible: true, rows: []browser.Row{row}}

	providers := newTestExtractor().Providers(context.Background(), page)
	require.Len(t, providers, 1)
	assert.Nil(t, providers[0].Name)
	assert.NotNil(t, providers[0].Metrics.ContextLength)
}
