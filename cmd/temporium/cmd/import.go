package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/snapshot"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a verified snapshot into a user's catalog",
	Long: `Import a snapshot into a user's catalog. The file must pass
full verification; imported games are re-homed to the given owner and
receive fresh identifiers. Games whose names collide with existing
ones are skipped.

Example:
  temporium import backup.tdb --owner 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		result, err := snapshot.Import(args[0], owner, s)
		if err != nil {
			fmt.Printf("Error importing snapshot: %v\n", err)
			return
		}

		fmt.Printf("Imported %d game(s)\n", result.Imported)
		if result.Failed > 0 {
			fmt.Printf("Skipped %d game(s) the store refused (duplicate names?)\n", result.Failed)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	_ = importCmd.MarkFlagRequired("owner")
}
