package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Show or set the contact links",
}

var socialShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the contact links",
	RunE: func(cmd *cobra.Command, args []string) error {
		links, err := appInstance.SettingsService.SocialLinks(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Instagram: %s\n", links.Instagram)
		fmt.Printf("TikTok:    %s\n", links.TikTok)
		fmt.Printf("Facebook:  %s\n", links.Facebook)
		fmt.Printf("WhatsApp:  %s\n", links.WhatsApp)
		return nil
	},
}

var socialSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one or more contact links",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := currentActor(ctx)
		if err != nil {
			return err
		}

		links, err := appInstance.SettingsService.SocialLinks(ctx)
		if err != nil {
			return err
		}
		fields := map[string]*string{
			"instagram": &links.Instagram,
			"tiktok":    &links.TikTok,
			"facebook":  &links.Facebook,
			"whatsapp":  &links.WhatsApp,
		}
		for name, dst := range fields {
			if cmd.Flags().Changed(name) {
				*dst, _ = cmd.Flags().GetString(name)
			}
		}

		if err := appInstance.SettingsService.UpdateSocialLinks(ctx, actor, links); err != nil {
			return err
		}
		fmt.Println("✓ Contact links updated")
		return nil
	},
}

func init() {
	socialCmd.AddCommand(socialShowCmd)
	socialCmd.AddCommand(socialSetCmd)

	socialSetCmd.Flags().String("instagram", "", "Instagram URL")
	socialSetCmd.Flags().String("tiktok", "", "TikTok URL")
	socialSetCmd.Flags().String("facebook", "", "Facebook URL")
	socialSetCmd.Flags().String("whatsapp", "", "WhatsApp URL, e.g. https://wa.me/62...")
}
