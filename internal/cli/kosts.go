package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/history"
	"github.com/dewakost/dewakost/internal/listing"
	"github.com/spf13/cobra"
)

var kostCmd = &cobra.Command{
	Use:     "kost",
	Aliases: []string{"kosts"},
	Short:   "Browse and manage listings",
	Long:    `List, show, add, edit, archive and delete kost listings.`,
}

var kostListCmd = &cobra.Command{
	Use:   "list",
	Short: "List listings matching the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		filter := appInstance.DefaultFilter()
		filter.Area, _ = cmd.Flags().GetString("area")
		filter.Facilities, _ = cmd.Flags().GetStringSlice("facility")
		filter.Campuses, _ = cmd.Flags().GetStringSlice("campus")
		if cmd.Flags().Changed("max-price") {
			filter.MaxPrice, _ = cmd.Flags().GetInt64("max-price")
		}
		if g, _ := cmd.Flags().GetString("gender"); g != "" && !strings.EqualFold(g, string(domain.GenderAny)) {
			gender, err := domain.ParseGender(g)
			if err != nil {
				return err
			}
			filter.Gender = gender
		}
		pageNum, _ := cmd.Flags().GetInt("page")

		// Archived listings are only shown to a logged-in admin
		privileged := false
		if all, _ := cmd.Flags().GetBool("all"); all {
			if _, err := currentActor(ctx); err != nil {
				return err
			}
			privileged = true
		}

		page, err := appInstance.KostService.List(ctx, filter, privileged, pageNum)
		if err != nil {
			return fmt.Errorf("failed to list kosts: %w", err)
		}

		if page.TotalItems == 0 {
			fmt.Println("No listings match the filters")
			return nil
		}
		if page.Reset {
			fmt.Printf("Page %d does not exist, showing page 1\n\n", pageNum)
		}

		fmt.Printf("%-36s  %-28s %-14s %-14s %-7s %-6s\n", "ID", "Name", "Area", "Price", "Gender", "Rating")
		fmt.Println(strings.Repeat("-", 112))
		for _, k := range page.Items {
			name := truncate(k.Name, 28)
			if k.IsArchived {
				name = truncate("[A] "+k.Name, 28)
			}
			fmt.Printf("%-36s  %-28s %-14s %-14s %-7s %-6.1f\n",
				k.ID,
				name,
				truncate(k.Area, 14),
				history.FormatRupiah(k.PricePerMonth),
				k.Gender,
				k.Rating,
			)
		}

		fmt.Printf("\nPage %d of %d  %s  (%d listing(s))\n",
			page.Number, page.TotalPages, pagerLine(page.Number, page.TotalPages), page.TotalItems)
		return nil
	},
}

var kostShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a listing's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		acc, err := appInstance.AccountService.Current(ctx)
		if err != nil {
			return err
		}
		k, err := appInstance.KostService.Get(ctx, args[0], acc != nil)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", k.Name)
		fmt.Printf("  ID:         %s\n", k.ID)
		fmt.Printf("  Area:       %s\n", k.Area)
		fmt.Printf("  Address:    %s\n", k.Address)
		fmt.Printf("  Price:      %s / month\n", history.FormatRupiah(k.PricePerMonth))
		fmt.Printf("  Gender:     %s\n", k.Gender)
		fmt.Printf("  Rating:     %.1f\n", k.Rating)
		fmt.Printf("  Facilities: %s\n", strings.Join(k.Facilities, ", "))
		fmt.Printf("  Campuses:   %s\n", strings.Join(k.NearbyCampuses, ", "))
		if k.ContactLink != "" {
			fmt.Printf("  Contact:    %s\n", k.ContactLink)
		}
		for _, u := range k.ImageURLs {
			fmt.Printf("  Image:      %s\n", u)
		}
		if k.IsArchived {
			fmt.Println("  Status:     archived")
		}
		if k.Description != "" {
			fmt.Printf("\n%s\n", k.Description)
		}
		return nil
	},
}

var kostAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		k := domain.Kost{Gender: domain.GenderCampur}
		if err := applyKostFlags(cmd, &k); err != nil {
			return err
		}

		created, err := appInstance.KostService.Create(ctx, actor, k)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Listing created: %s (ID: %s)\n", created.Name, created.ID)
		return nil
	},
}

var kostEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		k, err := appInstance.KostService.Get(ctx, args[0], true)
		if err != nil {
			return err
		}
		if err := applyKostFlags(cmd, k); err != nil {
			return err
		}

		_, changed, err := appInstance.KostService.Update(ctx, actor, *k)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("Nothing changed")
			return nil
		}

		fmt.Printf("✓ Listing updated: %s\n", k.Name)
		return nil
	},
}

var kostArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive or unarchive a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		k, err := appInstance.KostService.ToggleArchive(ctx, actor, args[0])
		if err != nil {
			return err
		}

		if k.IsArchived {
			fmt.Printf("✓ Listing archived: %s\n", k.Name)
		} else {
			fmt.Printf("✓ Listing visible again: %s\n", k.Name)
		}
		return nil
	},
}

var kostDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		k, err := appInstance.KostService.Get(ctx, args[0], true)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete %q?", k.Name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.KostService.Delete(ctx, actor, k.ID); err != nil {
			return err
		}

		fmt.Printf("✓ Listing deleted: %s (undo with 'dewakost history restore')\n", k.Name)
		return nil
	},
}

// applyKostFlags copies every flag the user set onto k
func applyKostFlags(cmd *cobra.Command, k *domain.Kost) error {
	flags := cmd.Flags()

	strs := map[string]*string{
		"name":        &k.Name,
		"area":        &k.Area,
		"address":     &k.Address,
		"description": &k.Description,
		"contact":     &k.ContactLink,
	}
	for name, dst := range strs {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	lists := map[string]*[]string{
		"facility": &k.Facilities,
		"campus":   &k.NearbyCampuses,
		"image":    &k.ImageURLs,
	}
	for name, dst := range lists {
		if flags.Changed(name) {
			*dst, _ = flags.GetStringSlice(name)
		}
	}

	if flags.Changed("price") {
		k.PricePerMonth, _ = flags.GetInt64("price")
	}
	if flags.Changed("rating") {
		k.Rating, _ = flags.GetFloat64("rating")
	}
	if flags.Changed("gender") {
		g, _ := flags.GetString("gender")
		gender, err := domain.ParseGender(g)
		if err != nil {
			return err
		}
		k.Gender = gender
	}
	return nil
}

func addKostFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Listing name")
	cmd.Flags().String("area", "", "Area, e.g. Lowokwaru")
	cmd.Flags().String("address", "", "Street address")
	cmd.Flags().Int64("price", 0, "Price per month in rupiah")
	cmd.Flags().Float64("rating", 0, "Rating from 0 to 5")
	cmd.Flags().String("description", "", "Description (Markdown)")
	cmd.Flags().StringSlice("facility", nil, "Facility (repeatable)")
	cmd.Flags().StringSlice("campus", nil, "Nearby campus (repeatable)")
	cmd.Flags().StringSlice("image", nil, "Image URL (repeatable)")
	cmd.Flags().String("contact", "", "Contact link, e.g. https://wa.me/62...")
	cmd.Flags().String("gender", "", "Putra, Putri or Campur")
}

// pagerLine renders the page window, e.g. "1 … 4 [5] 6 … 10"
func pagerLine(current, total int) string {
	nums := listing.PageNumbers(current, total)
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		switch {
		case n == listing.Ellipsis:
			parts = append(parts, "…")
		case n == current:
			parts = append(parts, fmt.Sprintf("[%d]", n))
		default:
			parts = append(parts, fmt.Sprintf("%d", n))
		}
	}
	return strings.Join(parts, " ")
}

func init() {
	kostCmd.AddCommand(kostListCmd)
	kostCmd.AddCommand(kostShowCmd)
	kostCmd.AddCommand(kostAddCmd)
	kostCmd.AddCommand(kostEditCmd)
	kostCmd.AddCommand(kostArchiveCmd)
	kostCmd.AddCommand(kostDeleteCmd)

	// List flags
	kostListCmd.Flags().String("area", "", "Area contains (case-insensitive)")
	kostListCmd.Flags().Int64("max-price", 0, "Maximum price per month (0 = no limit)")
	kostListCmd.Flags().StringSlice("facility", nil, "Required facility (repeatable, all must match)")
	kostListCmd.Flags().StringSlice("campus", nil, "Nearby campus (repeatable, any may match)")
	kostListCmd.Flags().String("gender", "", "Putra, Putri, Campur or Semua")
	kostListCmd.Flags().Int("page", 1, "Page number")
	kostListCmd.Flags().Bool("all", false, "Include archived listings (admin)")

	addKostFlags(kostAddCmd)
	kostAddCmd.MarkFlagRequired("name")
	kostAddCmd.MarkFlagRequired("area")
	kostAddCmd.MarkFlagRequired("address")
	kostAddCmd.MarkFlagRequired("price")

	addKostFlags(kostEditCmd)

	kostDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")
}
