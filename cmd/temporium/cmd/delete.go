package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a game by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		if err := s.DeleteGameByName(owner, args[0]); err != nil {
			fmt.Printf("Error deleting game: %v\n", err)
			return
		}
		fmt.Printf("Deleted '%s'\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	_ = deleteCmd.MarkFlagRequired("owner")
}
