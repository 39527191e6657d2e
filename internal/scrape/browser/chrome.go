package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeFetcher drives a headless Chrome instance via chromedp. One browser
// process is shared across fetches; each Fetch opens a fresh tab.
type ChromeFetcher struct {
	logger      *zap.Logger
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	navTimeout  time.Duration
}

// NewChromeFetcher starts the shared allocator. The browser itself launches
// lazily on the first Fetch.
func NewChromeFetcher(logger *zap.Logger, navTimeout time.Duration) *ChromeFetcher {
	allocCtx, cancel := chromedp.NewExecAllocator(
		context.Background(),
		chromedp.DefaultExecAllocatorOptions[:]...,
	)
	return &ChromeFetcher{
		logger:      logger,
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
		navTimeout:  navTimeout,
	}
}

// Close tears down the browser process.
func (f *ChromeFetcher) Close() {
	f.cancelAlloc()
}

// Fetch opens a tab, navigates to url, and waits for the document body.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)

	navCtx, cancelNav := scopedContext(tabCtx, ctx, f.navTimeout)
	defer cancelNav()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		cancelTab()
		return nil, fmt.Errorf("browser: navigate %s: %w", url, err)
	}

	f.logger.Debug("Page loaded", zap.String("url", url))
	return &chromePage{ctx: tabCtx, cancel: cancelTab}, nil
}

type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// scopedContext derives a bounded context from the tab context. chromedp
// actions must run against the tab's chain, so the caller's context cannot
// be the parent; its cancellation is forwarded instead.
func scopedContext(tab, caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(tab, timeout)
	stop := context.AfterFunc(caller, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (p *chromePage) ClickTab(ctx context.Context, name string) error {
	xpath := fmt.Sprintf(`//button[@role="tab" and contains(normalize-space(.), %q)]`, name)

	clickCtx, cancel := scopedContext(p.ctx, ctx, 5*time.Second)
	defer cancel()

	if err := chromedp.Run(clickCtx, chromedp.Click(xpath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("browser: tab %q: %w", name, ErrNotFound)
	}

	// The tab panel renders asynchronously after activation.
	settleCtx, cancelSettle := scopedContext(p.ctx, ctx, 3*time.Second)
	defer cancelSettle()
	_ = chromedp.Run(settleCtx, chromedp.Sleep(2*time.Second))

	return nil
}

func (p *chromePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := scopedContext(p.ctx, ctx, timeout)
	defer cancel()

	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("browser: wait for %q: %w", selector, err)
	}
	return nil
}

func (p *chromePage) Rows(ctx context.Context, selector string) ([]Row, error) {
	var count int
	script := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)

	evalCtx, cancel := scopedContext(p.ctx, ctx, 5*time.Second)
	defer cancel()

	if err := chromedp.Run(evalCtx, chromedp.Evaluate(script, &count)); err != nil {
		return nil, fmt.Errorf("browser: query rows %q: %w", selector, err)
	}

	rows := make([]Row, count)
	for i := range rows {
		rows[i] = &chromeRow{page: p, selector: selector, index: i}
	}
	return rows, nil
}

func (p *chromePage) Close() error {
	p.cancel()
	return nil
}

// chromeRow addresses one element of a selector match set by index, so
// descendant lookups stay scoped without holding CDP node references.
type chromeRow struct {
	page     *chromePage
	selector string
	index    int
}

func (r *chromeRow) Text(ctx context.Context, selector string) (string, error) {
	script := fmt.Sprintf(`(() => {
		const row = document.querySelectorAll(%q)[%d];
		if (!row) return null;
		const el = row.querySelector(%q);
		return el ? el.innerText : null;
	})()`, r.selector, r.index, selector)

	var text *string
	evalCtx, cancel := scopedContext(r.page.ctx, ctx, 5*time.Second)
	defer cancel()

	if err := chromedp.Run(evalCtx, chromedp.Evaluate(script, &text)); err != nil {
		return "", fmt.Errorf("browser: row text %q: %w", selector, err)
	}
	if text == nil {
		return "", ErrNotFound
	}
	return *text, nil
}

func (r *chromeRow) Texts(ctx context.Context, selector string) ([]string, error) {
	script := fmt.Sprintf(`(() => {
		const row = document.querySelectorAll(%q)[%d];
		if (!row) return [];
		return Array.from(row.querySelectorAll(%q)).map(el => el.innerText);
	})()`, r.selector, r.index, selector)

	var texts []string
	evalCtx, cancel := scopedContext(r.page.ctx, ctx, 5*time.Second)
	defer cancel()

	if err := chromedp.Run(evalCtx, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, fmt.Errorf("browser: row texts %q: %w", selector, err)
	}
	return texts, nil
}
