package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/cmdutil"
	"github.com/rosjs/msggen/internal/config"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/pipeline"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <package> <snapshot>",
		Short: "Compare a package against a saved snapshot",
		Long: `Resolve a package and compare it type by type against a snapshot written
by msggen snapshot. Added, removed and modified types are listed; modified
types show a YAML-aware diff of their resolved definitions.

Exits 0 when nothing changed and 1 when the schema differs.

Examples:
  msggen diff geometry_msgs geometry_msgs.snapshot.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c.Context(), args[0], args[1], cfg, c.OutOrStdout())
		},
	}
}

func runDiff(ctx context.Context, pkg, snapshotPath string, cfg *config.GlobalConfig, w io.Writer) error {
	saved, err := os.ReadFile(snapshotPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cmdutil.Failure("diff failed", oerrors.NewNotFoundError(
				"no snapshot at "+snapshotPath,
				pkg,
				fmt.Sprintf("create one with: msggen snapshot %s -o %s", pkg, snapshotPath),
			))
		}
		return oerrors.NewExitError(fmt.Errorf("reading snapshot: %w", err), oerrors.ExitGeneralError)
	}

	session, err := cmdutil.OpenSession(cfg)
	if err != nil {
		return err
	}

	useColor := output.UseColor()

	var result *pipeline.DiffResult
	err = runWork(ctx, cfg, "Resolving "+pkg+"...", func(ctx context.Context) error {
		current, err := session.Pipeline.Snapshot(ctx, pkg)
		if err != nil {
			return err
		}
		result, err = pipeline.Compare(saved, current, useColor)
		return err
	})
	if err != nil {
		return cmdutil.Failure("diff failed", err)
	}

	if result.Empty() {
		_, err := fmt.Fprintln(w, output.FormatCheckmark("no changes"))
		return err
	}

	styles := output.GetStyles()
	if !useColor {
		styles = output.NoColorStyles()
	}
	if _, err := fmt.Fprint(w, output.RenderDiff(result.Added, result.Removed, result.Modified, styles)); err != nil {
		return err
	}

	return &oerrors.ExitError{
		Code:    oerrors.ExitGeneralError,
		Err:     fmt.Errorf("%s differs from %s", pkg, snapshotPath),
		Printed: true,
	}
}
