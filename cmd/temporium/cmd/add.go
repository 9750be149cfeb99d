package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a game to the catalog",
	Long: `Add a game to the catalog.

Example:
  temporium add "Hollow Knight" --owner 1 --genre Platformer --disk 9.5 --ram 4 --vram 1 --rating 9 --tags "indie,metroidvania"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		game := catalog.NewGame(args[0], owner)
		game.Genre, _ = cmd.Flags().GetString("genre")
		game.DiskSpace, _ = cmd.Flags().GetFloat64("disk")
		game.RAMUsage, _ = cmd.Flags().GetFloat64("ram")
		game.VRAMRequired, _ = cmd.Flags().GetFloat64("vram")
		game.URL, _ = cmd.Flags().GetString("url")
		game.Completed, _ = cmd.Flags().GetBool("completed")
		game.Rating, _ = cmd.Flags().GetInt32("rating")
		game.IsFavorite, _ = cmd.Flags().GetBool("favorite")
		game.IsInstalled, _ = cmd.Flags().GetBool("installed")
		game.Notes, _ = cmd.Flags().GetString("notes")
		game.Tags, _ = cmd.Flags().GetString("tags")

		if err := s.AddGame(game); err != nil {
			fmt.Printf("Error adding game: %v\n", err)
			return
		}
		fmt.Printf("Added '%s' with id %d\n", game.Name, game.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	addCmd.Flags().String("genre", "Other", "Game genre")
	addCmd.Flags().Float64("disk", 0, "Disk space (GB)")
	addCmd.Flags().Float64("ram", 0, "RAM usage (GB)")
	addCmd.Flags().Float64("vram", 0, "Required VRAM (GB)")
	addCmd.Flags().String("url", "", "Store page URL")
	addCmd.Flags().Bool("completed", false, "Mark as completed")
	addCmd.Flags().Int32("rating", catalog.RatingNone, "Rating 0-10, -1 for unrated")
	addCmd.Flags().Bool("favorite", false, "Mark as favorite")
	addCmd.Flags().Bool("installed", false, "Mark as installed")
	addCmd.Flags().String("notes", "", "Free-text notes")
	addCmd.Flags().String("tags", "", "Comma-separated tags")
	_ = addCmd.MarkFlagRequired("owner")
}
