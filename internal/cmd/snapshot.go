package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/cmdutil"
	"github.com/rosjs/msggen/internal/config"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/pipeline"
)

// NewSnapshotCmd creates the snapshot command.
func NewSnapshotCmd(cfg *config.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlag

	c := &cobra.Command{
		Use:   "snapshot <package>",
		Short: "Save the resolved schema of a package as YAML",
		Long: `Resolve every message type of a package and write the resolved
definitions as YAML. Compare a later resolution against the file with
msggen diff.

Examples:
  msggen snapshot geometry_msgs -o geometry_msgs.snapshot.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSnapshot(c.Context(), args[0], cfg, of.Path)
		},
	}

	of.AddTo(c)
	return c
}

func runSnapshot(ctx context.Context, pkg string, cfg *config.GlobalConfig, dest string) error {
	session, err := cmdutil.OpenSession(cfg)
	if err != nil {
		return err
	}

	var snap *pipeline.Snapshot
	err = runWork(ctx, cfg, "Resolving "+pkg+"...", func(ctx context.Context) error {
		var err error
		snap, err = session.Pipeline.Snapshot(ctx, pkg)
		return err
	})
	if err != nil {
		return cmdutil.Failure("resolution failed", err)
	}

	data, err := snap.Marshal()
	if err != nil {
		return oerrors.NewExitError(fmt.Errorf("encoding snapshot: %w", err), oerrors.ExitGeneralError)
	}

	if err := cmdutil.WriteOutput(dest, data); err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}
	if dest != "" && dest != "-" {
		output.Println(output.FormatCheckmark(fmt.Sprintf("wrote %s (%s)",
			dest, output.FormatCount(len(snap.Types), "type"))))
	}
	return nil
}
