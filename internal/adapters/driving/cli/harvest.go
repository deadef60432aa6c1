package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest [collection...]",
	Short: "Harvest collections into the catalog",
	Long: `Fetches every record of the named collections (core, cutting), skips
those already in the destination catalog, and submits the rest.
With no arguments, every configured collection is harvested.

Record-level failures are reported and do not stop the run. Records with
an unknown outcome are reconciled by the next run.`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	if harvestOrchestrator == nil {
		return notConfigured("harvest")
	}

	collections, err := parseCollections(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if len(collections) == 0 {
		cmd.Println("Harvesting all collections...")
		reports, err := harvestOrchestrator.RunAll(ctx)
		for _, r := range reports {
			printReport(cmd, r)
		}
		if err != nil {
			return fmt.Errorf("harvest failed: %w", err)
		}
		return nil
	}

	var errs []error
	for _, ct := range collections {
		cmd.Printf("Harvesting %s...\n", ct)
		report, err := harvestOrchestrator.Run(ctx, ct)
		if report != nil {
			printReport(cmd, report)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("harvest %s: %w", ct, err))
			if ctx.Err() != nil {
				break
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("harvest failed: %w", errors.Join(errs...))
	}
	return nil
}

// printReport writes a run summary.
func printReport(cmd *cobra.Command, r *domain.RunReport) {
	cmd.Printf("\n[%s] run %s: %s\n", r.Collection, r.ID, r.State)
	cmd.Printf("  Destination:     %s\n", r.ParentID)
	cmd.Printf("  Fetched:         %d\n", r.Fetched)
	cmd.Printf("  Already stored:  %d\n", r.Indexed)
	cmd.Printf("  Eligible:        %d\n", r.Eligible)
	if r.Duplicates > 0 {
		cmd.Printf("  Duplicates:      %d\n", r.Duplicates)
	}
	cmd.Printf("  Submitted:       %d\n", r.Submitted)
	cmd.Printf("  Rejected:        %d\n", r.Rejected)
	cmd.Printf("  Failed:          %d\n", r.Failed)
	cmd.Printf("  Unknown:         %d\n", r.Unknown)
	cmd.Printf("  Enrichment errs: %d\n", r.EnrichmentFails)
	if r.Error != "" {
		cmd.Printf("  Error:           %s\n", r.Error)
	}
	if r.Unknown > 0 || r.Failed > 0 {
		cmd.Printf("Run 'crc-harvest harvest %s' again to retry, or 'crc-harvest runs show %s' for details.\n",
			r.Collection, r.ID)
	}
}
