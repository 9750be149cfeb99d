package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/snapshot"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a user's games to a binary snapshot",
	Long: `Export a user's games to a sealed binary snapshot file. The
snapshot embeds a content hash so later imports can detect corruption
or tampering. Filter flags restrict what gets exported.

Example:
  temporium export backup.tdb --owner 1
  temporium export favs.tdb --owner 1 --favorite`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		writer := snapshot.NewWriter()

		if filter := filterFromFlags(cmd); filter != nil {
			err = writer.ExportFiltered(args[0], owner, filter, s)
		} else {
			err = writer.Export(args[0], owner, s)
		}
		if err != nil {
			fmt.Printf("Error exporting snapshot: %v\n", err)
			return
		}
		fmt.Printf("Exported snapshot to %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	addFilterFlags(exportCmd)
	_ = exportCmd.MarkFlagRequired("owner")
}
