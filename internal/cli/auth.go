package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in as an admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		password, _ := cmd.Flags().GetString("password")
		if !cmd.Flags().Changed("password") {
			var err error
			if password, err = readSecret("Password: "); err != nil {
				return err
			}
		}

		acc, err := appInstance.AccountService.Login(ctx, args[0], password)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Logged in as %s\n", acc.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the admin session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.AccountService.Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("✓ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := appInstance.AccountService.Current(context.Background())
		if err != nil {
			return err
		}
		if acc == nil {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Println(acc.Username)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "Password (prompted when omitted)")
}
