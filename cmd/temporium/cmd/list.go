package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's games",
	Long: `List a user's games, ordered by name, optionally filtered.

Example:
  temporium list --owner 1 --favorite --rating-min 8`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		games, err := s.ListFiltered(owner, filterFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error listing games: %v\n", err)
			return
		}

		if len(games) == 0 {
			fmt.Println("No games found")
			return
		}
		for i := range games {
			printGame(&games[i])
		}
		fmt.Printf("%d game(s)\n", len(games))
	},
}

func printGame(g *catalog.Game) {
	rating := "unrated"
	if g.HasRating() {
		rating = fmt.Sprintf("%d/10", g.Rating)
	}
	marks := ""
	if g.Completed {
		marks += " [completed]"
	}
	if g.IsFavorite {
		marks += " [favorite]"
	}
	if g.IsInstalled {
		marks += " [installed]"
	}
	fmt.Printf("%4d  %-40s %-12s %6.1f GB  %s%s\n", g.ID, g.Name, g.Genre, g.DiskSpace, rating, marks)
	if g.Tags != "" {
		fmt.Printf("      tags: %s\n", g.Tags)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	addFilterFlags(listCmd)
	_ = listCmd.MarkFlagRequired("owner")
}
