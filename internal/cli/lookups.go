package cli

import (
	"context"
	"fmt"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/spf13/cobra"
)

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "Manage campus and facility options",
	Long: `Manage the campus and facility lists used by filters and listings.
Renaming or removing an option also updates every listing that uses it.`,
}

func parseKind(s string) (domain.LookupKind, error) {
	kind := domain.LookupKind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown list %q (want campuses or facilities)", s)
	}
	return kind, nil
}

func printLookups(values []string) {
	for _, v := range values {
		fmt.Printf("  %s\n", v)
	}
	fmt.Printf("\nTotal: %d\n", len(values))
}

var lookupsListCmd = &cobra.Command{
	Use:   "list [campuses|facilities]",
	Short: "List options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		values, err := appInstance.LookupService.List(context.Background(), kind)
		if err != nil {
			return err
		}
		printLookups(values)
		return nil
	},
}

var lookupsAddCmd = &cobra.Command{
	Use:   "add [campuses|facilities] [value]",
	Short: "Add an option",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		if _, err := appInstance.LookupService.Add(ctx, actor, kind, args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Added %q to %s\n", args[1], kind)
		return nil
	},
}

var lookupsRenameCmd = &cobra.Command{
	Use:   "rename [campuses|facilities] [old] [new]",
	Short: "Rename an option everywhere",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		if _, err := appInstance.LookupService.Rename(ctx, actor, kind, args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("✓ Renamed %q to %q\n", args[1], args[2])
		return nil
	},
}

var lookupsRemoveCmd = &cobra.Command{
	Use:   "remove [campuses|facilities] [value]",
	Short: "Remove an option from the list and every listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Remove %q? It will also be removed from every listing.", args[1])) {
			fmt.Println("Cancelled.")
			return nil
		}

		if _, err := appInstance.LookupService.Remove(ctx, actor, kind, args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Removed %q\n", args[1])
		return nil
	},
}

func init() {
	lookupsCmd.AddCommand(lookupsListCmd)
	lookupsCmd.AddCommand(lookupsAddCmd)
	lookupsCmd.AddCommand(lookupsRenameCmd)
	lookupsCmd.AddCommand(lookupsRemoveCmd)

	lookupsRemoveCmd.Flags().Bool("yes", false, "Skip confirmation")
}
