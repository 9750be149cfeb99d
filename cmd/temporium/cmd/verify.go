package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/snapshot"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a snapshot's integrity",
	Long: `Verify a snapshot's structural and cryptographic integrity
without touching the catalog. Exits non-zero unless the file is fully
valid.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := snapshot.Verify(args[0])
		fmt.Printf("%s: %s\n", args[0], result.Text())
		if result != snapshot.OK {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
