package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-account/internal/cli"
)

// NewPhotoCommand creates the photo command
func NewPhotoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "photo <image>",
		Short: "Upload a profile photo",
		Long: `Upload a png, jpg, gif or webp image as your profile photo.

Photos go to the backend configured under photo: in config.yaml, either a
local directory or an S3 compatible bucket.

Examples:
  pluqqy-account photo ~/Pictures/me.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ValidateFilePath(args[0])
			if err != nil {
				return err
			}

			cc, err := cli.NewCommandContext(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			p, err := cc.RequireUser(cmd.Context())
			if err != nil {
				return err
			}

			svc, err := cc.Photos(cmd.Context())
			if err != nil {
				return err
			}

			url, err := svc.Upload(cmd.Context(), p.ID, path)
			if err != nil {
				return fmt.Errorf("failed to upload photo: %w", err)
			}

			cli.PrintSuccess(cmd.OutOrStdout(), "Profile photo updated: %s", url)
			return nil
		},
	}
}
