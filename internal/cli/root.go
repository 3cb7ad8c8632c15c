package cli

import (
	"github.com/dewakost/dewakost/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "dewakost",
	Short: "Boarding-house listings for Malang students",
	Long: `Dewakost keeps a directory of kost (boarding-house) listings with
filters for area, price, facilities, nearby campuses and gender.

Running dewakost without arguments launches the interactive TUI.
Admin subcommands need a session: run 'dewakost login' first.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(kostCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(lookupsCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(socialCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}
