// Command crc-harvest copies CRC well catalog samples into ScienceBase.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/crc-harvest/internal/adapters/driven/auth"
	"github.com/custodia-labs/crc-harvest/internal/adapters/driven/config/file"
	"github.com/custodia-labs/crc-harvest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/crc-harvest/internal/adapters/driving/cli"
	"github.com/custodia-labs/crc-harvest/internal/connectors/arcgis"
	"github.com/custodia-labs/crc-harvest/internal/connectors/crcweb"
	"github.com/custodia-labs/crc-harvest/internal/connectors/macrostrat"
	"github.com/custodia-labs/crc-harvest/internal/connectors/sciencebase"
	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/core/services"
	"github.com/custodia-labs/crc-harvest/internal/logger"
	"github.com/custodia-labs/crc-harvest/internal/mappers"
	"github.com/custodia-labs/crc-harvest/internal/retry"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	svc := cli.Services{Settings: settingsService}

	settings, err := settingsService.Get()
	if err != nil {
		svc.SetupErr = err
	} else {
		store, err := sqlite.NewStore(filepath.Join(filepath.Dir(configStore.Path()), "data"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer store.Close()

		svc.Harvest = buildOrchestrator(settings, store)
		svc.History = services.NewRunHistory(store.RunStore())
		svc.Cache = services.NewCacheService(store.RecordCache())
	}

	cli.SetServices(svc)
	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// buildOrchestrator wires the connectors for settings into a harvest orchestrator.
func buildOrchestrator(settings *domain.HarvestSettings, store *sqlite.Store) *services.HarvestOrchestrator {
	policy := retry.FromSettings(settings.Retry)

	var fetcher driven.SourceFetcher = arcgis.NewFetcher(
		arcgis.NewClient(settings.FeatureService.BaseURL, settings.HTTPTimeout), policy)
	if settings.Cache.Enabled {
		fetcher = services.NewCachedFetcher(fetcher, store.RecordCache(), settings.Cache.TTL)
	}

	var enrichers []driven.Enricher
	if settings.Macrostrat.Enabled {
		enrichers = append(enrichers, macrostrat.New(settings.Macrostrat.BaseURL, settings.HTTPTimeout, policy))
	}
	if settings.CRCWeb.Enabled {
		enrichers = append(enrichers, crcweb.New(settings.CRCWeb.BaseURL, settings.HTTPTimeout, policy))
	}

	tokens := auth.NewTokenProvider(settings.Catalog)
	if !tokens.IsAuthenticated() {
		logger.Warn("no catalog token set (%s or catalog.token): submissions will be rejected", services.TokenEnvVar)
	}
	client := sciencebase.NewClient(settings.Catalog.BaseURL, tokens, settings.HTTPTimeout, settings.Catalog.RequestsPerSecond)
	contacts := []domain.Contact{sciencebase.OwnerContact(settings.Catalog.OwnerName)}
	if settings.Catalog.StewardName != "" {
		contacts = append(contacts,
			sciencebase.StewardContact(settings.Catalog.StewardName, settings.Catalog.StewardPartyID))
	}

	return services.NewHarvestOrchestrator(
		*settings,
		fetcher,
		mappers.DefaultRegistry(settings.CRCWeb.BaseURL),
		services.NewEnrichmentPipeline(enrichers...),
		services.NewReconciliationIndex(sciencebase.NewReader(client, policy, settings.Catalog.PageSize)),
		sciencebase.NewSubmitter(client, contacts...),
		store.RunStore(),
	)
}
