package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local fetch cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [collection...]",
	Short: "Drop cached records so the next run fetches again",
	Long: `Drops the cached feature service records of the given collections, or of
every collection when none is named. The next harvest or plan fetches the
collection from the feature service.`,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if fetchCache == nil {
		return notConfigured("cache")
	}

	collections, err := parseCollections(args)
	if err != nil {
		return err
	}
	if len(collections) == 0 {
		collections = domain.AllCollections()
	}

	for _, ct := range collections {
		n, err := fetchCache.Clear(cmd.Context(), ct)
		if err != nil {
			return err
		}
		cmd.Printf("Cleared %s (%d records)\n", ct, n)
	}
	return nil
}
