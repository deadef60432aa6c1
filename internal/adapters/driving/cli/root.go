// Package cli provides the crc-harvest command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driving"
	"github.com/custodia-labs/crc-harvest/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. Nil until SetServices is called.
var (
	harvestOrchestrator driving.HarvestOrchestrator
	runHistory          driving.RunHistory
	settingsService     driving.SettingsService
	fetchCache          driving.FetchCache

	// setupErr explains why the harvest services could not be built.
	setupErr error
)

var rootCmd = &cobra.Command{
	Use:   "crc-harvest",
	Short: "Harvest CRC well catalog samples into ScienceBase",
	Long: `crc-harvest copies core and cutting sample records from the USGS Core
Research Center well catalog into ScienceBase catalog items.

Each run fetches a whole collection, skips records already in the
destination, and submits the rest one at a time. An interrupted run is
resumed by running it again.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Services bundles the driving ports the commands need.
type Services struct {
	Harvest  driving.HarvestOrchestrator
	History  driving.RunHistory
	Settings driving.SettingsService
	Cache    driving.FetchCache

	// SetupErr is reported by commands that need Harvest, History or Cache when
	// they could not be built, typically because the settings are invalid.
	SetupErr error
}

// SetServices wires the services into the commands.
func SetServices(s Services) {
	harvestOrchestrator = s.Harvest
	runHistory = s.History
	settingsService = s.Settings
	fetchCache = s.Cache
	setupErr = s.SetupErr
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// notConfigured returns the error for a missing service.
func notConfigured(name string) error {
	if setupErr != nil {
		return fmt.Errorf("%s service not configured: %w", name, setupErr)
	}
	return errors.New(name + " service not configured")
}

// parseCollections converts arguments to collection types.
func parseCollections(args []string) ([]domain.CollectionType, error) {
	out := make([]domain.CollectionType, 0, len(args))
	for _, a := range args {
		ct, err := domain.ParseCollectionType(a)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}
