// Seed populates the store with the aggregator's current model catalog.
// New models get the sentinel provider list; the scraper fills them in on
// its next run. Requires OPENROUTER_API_KEY in the environment or .env.
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/config"
	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/openrouter"
	"github.com/nulzo/provider-metrics-api/internal/platform/logger"
	"github.com/nulzo/provider-metrics-api/internal/store"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Fatal("Failed to open model store", zap.Error(err))
	}

	client := openrouter.NewClient(cfg.OpenRouter.APIURL, cfg.OpenRouter.APIKey)
	models, err := client.ListModels(context.Background())
	if err != nil {
		log.Fatal("Failed to fetch model catalog", zap.Error(err))
	}
	log.Info("Fetched model catalog", zap.Int("models", len(models)))

	added := 0
	for _, m := range models {
		if _, known := st.Get(m.ID); known {
			continue
		}
		st.DiffAndMerge(m.ID, []domain.Provider{domain.Sentinel()})
		added++
	}

	if added > 0 {
		if err := st.Save(); err != nil {
			log.Fatal("Failed to save store", zap.Error(err))
		}
	}

	log.Info("Seed complete", zap.Int("added", added), zap.Int("total", st.Len()))
}
