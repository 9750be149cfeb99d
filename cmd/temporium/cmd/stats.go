package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a user's catalog",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		stats, err := s.Stats(owner)
		if err != nil {
			fmt.Printf("Error computing stats: %v\n", err)
			return
		}

		fmt.Printf("Total games:          %d\n", stats.TotalGames)
		fmt.Printf("Favorites:            %d\n", stats.FavoritesCount)
		fmt.Printf("Completed:            %d\n", stats.CompletedCount)
		fmt.Printf("Unrated:              %d\n", stats.NoRatingCount)
		fmt.Printf("Installed:            %d\n", stats.InstalledCount)
		fmt.Printf("Installed disk space: %.1f GB\n", stats.InstalledDiskSpace)
		fmt.Printf("Missing URL:          %d\n", stats.NoURLCount)

		tags, err := s.ListTags(owner)
		if err == nil && len(tags) > 0 {
			fmt.Printf("Tags:                 %s\n", strings.Join(tags, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	_ = statsCmd.MarkFlagRequired("owner")
}
