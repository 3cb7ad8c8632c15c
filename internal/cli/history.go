package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dewakost/dewakost/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and undo admin activity",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activity, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if _, err := currentActor(ctx); err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		dateStr, _ := cmd.Flags().GetString("date")
		day, err := history.ParseDay(dateStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date (want YYYY-MM-DD): %w", err)
		}

		entries, err := appInstance.KostService.History(ctx, history.Filter{Term: search, Date: day, Location: time.Local})
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No activity found")
			return nil
		}

		now := time.Now()
		for _, e := range entries {
			status := ""
			switch {
			case e.IsRestored:
				status = " (restored)"
			case e.CanRestore():
				status = " [restorable]"
			}
			fmt.Printf("%s  %s: %s%s\n", e.ID, e.Action.Label(), e.KostName, status)

			meta := []string{history.TimeAgo(e.Timestamp, now)}
			if e.Username != "" {
				meta = append(meta, "by "+e.Username)
			}
			fmt.Printf("    %s\n", strings.Join(meta, " "))
			if e.Details != "" {
				fmt.Printf("    %s\n", e.Details)
			}
		}

		fmt.Printf("\nTotal: %d entries\n", len(entries))
		return nil
	},
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore [entry-id]",
	Short: "Undo a logged action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		entry, err := appInstance.KostService.Restore(ctx, actor, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s\n", entry.Details)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRestoreCmd)

	historyListCmd.Flags().String("search", "", "Match property name, details or username")
	historyListCmd.Flags().String("date", "", "Only this day (YYYY-MM-DD)")
}
