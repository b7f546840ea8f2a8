package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/cmdutil"
	"github.com/rosjs/msggen/internal/config"
	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/templates"
)

// NewShowCmd creates the show command.
func NewShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	var ff cmdutil.FormatFlag

	c := &cobra.Command{
		Use:   "show <type>",
		Short: "Show the resolved definition of a message type",
		Long: `Resolve a message type with all of its nested types and print it.

Formats:
  tree    fields, types and defaults as a tree (default)
  yaml    the resolved definition as YAML
  json    the resolved definition as JSON
  js      the rendered message model

Examples:
  msggen show geometry_msgs/TwistStamped
  msggen show Header -o yaml
  msggen show std_msgs/String -o js`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runShow(c.Context(), args[0], cfg, ff.Format, c.OutOrStdout())
		},
	}

	ff.AddTo(c, string(output.FormatTree), strings.Join(output.ValidFormats(), ", "))
	return c
}

func runShow(ctx context.Context, typeName string, cfg *config.GlobalConfig, formatFlag string, w io.Writer) error {
	format, ok := output.ParseFormat(formatFlag)
	if !ok {
		return oerrors.NewExitError(
			fmt.Errorf("invalid output format %q (valid: %s)", formatFlag, strings.Join(output.ValidFormats(), ", ")),
			oerrors.ExitValidationError,
		)
	}

	session, err := cmdutil.OpenSession(cfg)
	if err != nil {
		return err
	}

	var def *core.Definition
	err = runWork(ctx, cfg, "Resolving "+typeName+"...", func(ctx context.Context) error {
		var err error
		def, err = session.Pipeline.Show(ctx, typeName)
		return err
	})
	if err != nil {
		return cmdutil.Failure("resolution failed", err)
	}

	if format == output.FormatJS {
		model, err := templates.RenderMessage(def)
		if err != nil {
			return cmdutil.Failure("rendering failed", err)
		}
		_, err = io.WriteString(w, model+"\n")
		return err
	}

	return output.WriteDefinitions([]*core.Definition{def}, format, w)
}
