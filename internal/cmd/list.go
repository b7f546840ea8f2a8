package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/cmdutil"
	"github.com/rosjs/msggen/internal/config"
	"github.com/rosjs/msggen/internal/core"
	"github.com/rosjs/msggen/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list <package>",
		Short: "List the message types of a package",
		Long: `Resolve every message type of a package and print a table of types,
field counts, nested message counts and MD5 sums.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runList(c.Context(), args[0], cfg, c.OutOrStdout())
		},
	}
}

func runList(ctx context.Context, pkg string, cfg *config.GlobalConfig, w io.Writer) error {
	session, err := cmdutil.OpenSession(cfg)
	if err != nil {
		return err
	}

	var defs []*core.Definition
	err = runWork(ctx, cfg, "Resolving "+pkg+"...", func(ctx context.Context) error {
		var err error
		defs, err = session.Pipeline.Resolve(ctx, pkg, nil)
		return err
	})
	if err != nil {
		return cmdutil.Failure("resolution failed", err)
	}

	_, err = fmt.Fprintln(w, output.RenderTypeTable(defs))
	return err
}
