package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

var (
	runsLimit      int
	runsShowStatus string
)

var runsCmd = &cobra.Command{
	Use:   "runs [collection]",
	Short: "List recent harvest runs",
	Long:  `Lists recent harvest runs from the local run log, newest first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show per-record outcomes of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "Number of runs to list")
	runsShowCmd.Flags().StringVar(&runsShowStatus, "status", "",
		"Only show outcomes with this status (submitted, rejected, failed, unknown, degraded)")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return notConfigured("run history")
	}

	var ct domain.CollectionType
	if len(args) == 1 {
		parsed, err := domain.ParseCollectionType(args[0])
		if err != nil {
			return err
		}
		ct = parsed
	}

	runs, err := runHistory.Recent(cmd.Context(), ct, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		cmd.Printf("%s  %-8s %-11s %s  submitted %d, rejected %d, failed %d, unknown %d\n",
			r.ID, r.Collection, r.State, r.StartedAt.Local().Format(time.DateTime),
			r.Submitted, r.Rejected, r.Failed, r.Unknown)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return notConfigured("run history")
	}

	outcomes, err := runHistory.Outcomes(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	shown := 0
	for _, o := range outcomes {
		if runsShowStatus != "" && string(o.Status) != runsShowStatus {
			continue
		}
		shown++
		line := string(o.Status) + "\t" + string(o.Stage) + "\t" + displayID(o.RecordID)
		if o.Source != "" {
			line += "\t" + o.Source
		}
		if o.ItemURL != "" {
			line += "\t" + o.ItemURL
		}
		if o.Error != "" {
			line += "\t" + o.Error
		}
		cmd.Println(line)
	}
	if shown == 0 {
		cmd.Println("No outcomes.")
	}
	return nil
}

func displayID(id string) string {
	if id == "" {
		return "(no id)"
	}
	return id
}
