package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/config"
	"github.com/rosjs/msggen/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration values and where they came from",
		RunE: func(c *cobra.Command, _ []string) error {
			t := output.NewTable("KEY", "VALUE", "SOURCE")
			if cfg != nil {
				for _, v := range cfg.Resolved {
					t.Row(v.Key, fmt.Sprint(v.Value), string(v.Source))
				}
			}
			_, err := fmt.Fprintln(c.OutOrStdout(), t.String())
			return err
		},
	}
}
