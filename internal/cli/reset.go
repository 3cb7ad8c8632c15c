package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and start from the sample listings",
	Long: `Delete every listing, the activity history, lookup lists, links,
accounts and the session. The next start uses the built-in sample data
and the default admin account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if _, err := currentActor(ctx); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt("This will delete ALL data. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.BackupService.Reset(ctx); err != nil {
			return err
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip confirmation")
}
