package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status [collection...]",
	Short: "Show the last run state of each collection",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if harvestOrchestrator == nil {
		return notConfigured("harvest")
	}

	collections, err := parseCollections(args)
	if err != nil {
		return err
	}
	if len(collections) == 0 {
		collections = domain.AllCollections()
	}

	for _, ct := range collections {
		status, err := harvestOrchestrator.Status(cmd.Context(), ct)
		if err != nil {
			return err
		}
		if status.RunID == "" {
			cmd.Printf("%-8s %s\n", ct, status.State)
			continue
		}
		cmd.Printf("%-8s %-11s run %s  %d/%d processed, %d errors\n",
			ct, status.State, status.RunID, status.Processed, status.Eligible, status.ErrorCount)
	}
	return nil
}
