package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

var planList bool

var planCmd = &cobra.Command{
	Use:   "plan <collection>",
	Short: "Show what a harvest would submit",
	Long: `Fetches the collection and reads the destination catalog, then reports
how many records a harvest would submit. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVarP(&planList, "list", "l", false, "List the eligible record ids")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if harvestOrchestrator == nil {
		return notConfigured("harvest")
	}

	ct, err := domain.ParseCollectionType(args[0])
	if err != nil {
		return err
	}

	plan, err := harvestOrchestrator.Plan(cmd.Context(), ct)
	if err != nil {
		return err
	}

	cmd.Printf("[%s] into %s\n", plan.Collection, plan.ParentID)
	cmd.Printf("  Fetched:        %d\n", plan.Fetched)
	cmd.Printf("  Already stored: %d\n", plan.Indexed)
	if plan.Duplicates > 0 {
		cmd.Printf("  Duplicates:     %d\n", plan.Duplicates)
	}
	cmd.Printf("  To submit:      %d\n", len(plan.Eligible))
	enrichment := "none"
	if len(plan.Enrichers) > 0 {
		enrichment = strings.Join(plan.Enrichers, ", ")
	}
	cmd.Printf("  Enrichment:     %s\n", enrichment)

	if planList {
		for _, id := range plan.Eligible {
			cmd.Println(displayID(id))
		}
	}
	return nil
}
