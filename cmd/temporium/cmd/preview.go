package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/snapshot"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Inspect a snapshot's contents without importing",
	Long: `Decode and print a snapshot's records for inspection. Only
the magic value is checked; a snapshot that would fail verification is
still shown, with its originally stored identifiers and owners.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		games, err := snapshot.Read(args[0])
		if err != nil {
			fmt.Printf("Error reading snapshot: %v\n", err)
			return
		}

		result := snapshot.Verify(args[0])
		if result != snapshot.OK {
			fmt.Printf("Warning: %s\n", result.Text())
		}

		for i := range games {
			g := &games[i]
			fmt.Printf("%4d  owner=%d  %s\n", g.ID, g.OwnerID, g.Name)
		}
		fmt.Printf("%d game(s) in snapshot\n", len(games))
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
