package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// userCmd groups the account management subcommands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		password, _ := cmd.Flags().GetString("password")
		admin, _ := cmd.Flags().GetBool("admin")

		user, err := s.RegisterUser(args[0], password, admin)
		if err != nil {
			fmt.Printf("Error registering user: %v\n", err)
			return
		}
		fmt.Printf("Registered '%s' with id %d\n", user.Username, user.ID)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		users, err := s.ListUsers()
		if err != nil {
			fmt.Printf("Error listing users: %v\n", err)
			return
		}
		for i := range users {
			u := &users[i]
			role := ""
			if u.IsAdmin {
				role = " (admin)"
			}
			count, _ := s.CountGames(u.ID)
			fmt.Printf("%4d  %s%s, %d game(s)\n", u.ID, u.Username, role, count)
		}
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user and their games",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer s.Close()

		var id int32
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			fmt.Printf("Invalid user id: %s\n", args[0])
			return
		}
		if err := s.DeleteUser(id); err != nil {
			fmt.Printf("Error deleting user: %v\n", err)
			return
		}
		fmt.Printf("Deleted user %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)

	userRegisterCmd.Flags().String("password", "", "Password for the new user (required)")
	userRegisterCmd.Flags().Bool("admin", false, "Grant admin privileges")
	_ = userRegisterCmd.MarkFlagRequired("password")
}
