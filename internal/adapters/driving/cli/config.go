package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

//nolint:gosec // G101: config key name, not a credential.
const tokenKey = "catalog.token"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change crc-harvest settings stored in the config file.

The catalog token may also be supplied through CRC_HARVEST_CATALOG_TOKEN.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Sets one configuration key. Run 'crc-harvest config keys' for the list.
When setting catalog.token without a value, the token is read from stdin
without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

// readSecret reads the token without echo. Replaced in tests.
var readSecret = readPassword

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Showing defaults. Run 'crc-harvest config set' to fix configuration issues.")
		d := settingsService.GetDefaults()
		settings = &d
	}

	cmd.Printf("Config file: %s\n\n", settingsService.Path())

	cmd.Println("[Feature service]")
	cmd.Printf("  Base URL:  %s\n", settings.FeatureService.BaseURL)
	cmd.Printf("  Page size: %d\n", settings.FeatureService.PageSize)
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Base URL:   %s\n", settings.Catalog.BaseURL)
	cmd.Printf("  Token:      %s\n", maskToken(settings.Catalog.Token))
	cmd.Printf("  Rate:       %g requests/s\n", settings.Catalog.RequestsPerSecond)
	cmd.Printf("  Page size:  %d\n", settings.Catalog.PageSize)
	cmd.Printf("  Owner:      %s\n", settings.Catalog.OwnerName)
	if settings.Catalog.StewardName != "" {
		cmd.Printf("  Steward:    %s\n", settings.Catalog.StewardName)
	}
	cmd.Println()

	cmd.Println("[Enrichment]")
	cmd.Printf("  Macrostrat: %s (%s)\n", enabledLabel(settings.Macrostrat.Enabled), settings.Macrostrat.BaseURL)
	cmd.Printf("  CRC web:    %s (%s)\n", enabledLabel(settings.CRCWeb.Enabled), settings.CRCWeb.BaseURL)
	cmd.Println()

	cmd.Println("[Collections]")
	for _, ct := range domain.AllCollections() {
		if c, ok := settings.Collections[ct]; ok {
			cmd.Printf("  %-8s layer %d -> %s\n", ct, c.Layer, c.ParentID)
		}
	}
	cmd.Println()

	cmd.Println("[Runtime]")
	cmd.Printf("  HTTP timeout: %s\n", settings.HTTPTimeout)
	cmd.Printf("  Retry:        %d attempts, %s to %s\n",
		settings.Retry.MaxAttempts, settings.Retry.InitialInterval, settings.Retry.MaxInterval)
	cmd.Printf("  Cache:        %s (ttl %s)\n", enabledLabel(settings.Cache.Enabled), settings.Cache.TTL)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == tokenKey:
		cmd.Print("Catalog token: ")
		value = readSecret(cmd.InOrStdin())
		cmd.Println()
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	if key == tokenKey {
		cmd.Printf("Set %s = %s\n", key, maskToken(value))
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func readPassword(in io.Reader) string {
	// Try to read password without echo
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
