package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage admin accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		accounts, err := appInstance.AccountService.List(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-44s %-20s\n", "ID", "Username")
		fmt.Println("----------------------------------------------------------------")
		for _, a := range accounts {
			marker := ""
			if a.ID == actor.ID {
				marker = " (you)"
			}
			fmt.Printf("%-44s %-20s\n", a.ID, a.Username+marker)
		}
		return nil
	},
}

var accountsAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Add an admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		password, err := readSecret("Password for new account: ")
		if err != nil {
			return err
		}

		acc, err := appInstance.AccountService.Add(ctx, actor, args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Account %q added\n", acc.Username)
		return nil
	},
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Remove account %s?", args[0])) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.AccountService.Remove(ctx, actor, args[0]); err != nil {
			return err
		}
		fmt.Println("✓ Account removed")
		return nil
	},
}

var accountsPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		current, err := readSecret("Current password: ")
		if err != nil {
			return err
		}
		next, err := readSecret("New password: ")
		if err != nil {
			return err
		}
		confirm, err := readSecret("Confirm new password: ")
		if err != nil {
			return err
		}
		if next != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := appInstance.AccountService.ChangePassword(ctx, actor, actor.ID, current, next); err != nil {
			return err
		}
		fmt.Println("✓ Password updated")
		return nil
	},
}

func init() {
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsRemoveCmd)
	accountsCmd.AddCommand(accountsPasswdCmd)

	accountsRemoveCmd.Flags().Bool("yes", false, "Skip confirmation")
}
