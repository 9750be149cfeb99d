package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the distinct tags across a user's games",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		owner, _ := cmd.Flags().GetInt32("owner")
		tags, err := s.ListTags(owner)
		if err != nil {
			fmt.Printf("Error listing tags: %v\n", err)
			return
		}

		if len(tags) == 0 {
			fmt.Println("No tags found")
			return
		}
		for _, t := range tags {
			fmt.Println(t)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().Int32("owner", 0, "Owner user id (required)")
	_ = tagsCmd.MarkFlagRequired("owner")
}
