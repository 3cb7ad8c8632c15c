package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import all data as JSON",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a backup file",
	Long: `Write every collection to a JSON backup file. Without a file name
the backup is written to dewakost_backup_<timestamp>.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if _, err := currentActor(ctx); err != nil {
			return err
		}

		data, err := appInstance.BackupService.Export(ctx)
		if err != nil {
			return err
		}

		path := fmt.Sprintf("dewakost_backup_%s.json",
			strings.ReplaceAll(time.Now().UTC().Format("2006-01-02T15:04:05"), ":", "-"))
		if len(args) == 1 {
			path = args[0]
		}
		if path == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Printf("✓ Backup written to %s\n", path)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all data with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		// Validate before asking, so a bad file fails fast
		b, err := appInstance.BackupService.Parse(data)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		msg := fmt.Sprintf("Import %d listing(s) and %d history entries? All current data will be replaced.",
			len(b.KostData), len(b.HistoryLog))
		if !yes && !confirmPrompt(msg) {
			fmt.Println("Cancelled.")
			return nil
		}

		if _, err := appInstance.BackupService.Import(ctx, actor, data); err != nil {
			return err
		}
		fmt.Println("✓ Backup imported")
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)

	backupImportCmd.Flags().Bool("yes", false, "Skip confirmation")
}
