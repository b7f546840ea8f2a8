package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/config"
	"github.com/rosjs/msggen/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show msggen version information.

Displays:
  - msggen version, commit, and build date
  - CUE SDK version (config validation)
  - rosmsg location and ROS distribution`,
		RunE: func(c *cobra.Command, _ []string) error {
			rosmsg := config.DefaultRosmsg
			if cfg != nil && cfg.Config != nil && cfg.Config.Source.Rosmsg != "" {
				rosmsg = cfg.Config.Source.Rosmsg
			}

			info := version.FullVersionString(version.Get(), version.DetectRosmsg(c.Context(), rosmsg))
			_, err := fmt.Fprintln(c.OutOrStdout(), info)
			return err
		},
	}
}
