package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nulzo/provider-metrics-api/cmd"
	"github.com/nulzo/provider-metrics-api/internal/cli"
	"github.com/nulzo/provider-metrics-api/internal/config"
	"github.com/nulzo/provider-metrics-api/internal/platform/logger"
	"github.com/nulzo/provider-metrics-api/internal/scrape"
	"github.com/nulzo/provider-metrics-api/internal/scrape/browser"
	"github.com/nulzo/provider-metrics-api/internal/store"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: scraper [model-page-url]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Without arguments, re-scrapes every model in the store.\n")
		fmt.Fprintf(flag.CommandLine.Output(), "With a model page URL, scrapes only that model, inserting it if new.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	cmd.CheckForUpdates()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Fatal("Failed to open model store", zap.Error(err))
	}

	fetcher := browser.NewChromeFetcher(log, cfg.Scrape.NavigationTimeout)
	defer fetcher.Close()

	extractor := scrape.NewExtractor(log, cfg.Scrape.WaitTimeout)
	limiter := rate.NewLimiter(rate.Limit(cfg.Scrape.RequestsPerMinute/60.0), 1)
	runner := scrape.NewRunner(log, st, fetcher, extractor, limiter, cfg.OpenRouter.SiteURL)

	// Interrupts land between per-model save points, so a Ctrl-C loses at
	// most the model in flight.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var report *scrape.Report
	if flag.NArg() > 0 {
		report, err = runner.ScrapeURL(ctx, flag.Arg(0))
	} else {
		report, err = runner.RefreshAll(ctx)
	}
	if report != nil {
		cli.PrettyPrint(report)
	}
	if err != nil {
		log.Fatal("Scrape run aborted", zap.Error(err))
	}
}
