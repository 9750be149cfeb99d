package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "temporium",
	Short: "Temporium - game collection manager",
	Long: `Temporium manages a personal game collection and exports it to
self-verifying binary snapshots that can be inspected, verified and
re-imported later.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the catalog store")
}

// openStore opens the catalog store under the configured data directory.
func openStore(cmd *cobra.Command) (*store.CatalogStore, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	s, err := store.Open(store.Config{DataDir: dataDir})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}
