package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/cmdutil"
	"github.com/rosjs/msggen/internal/config"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/pipeline"
	"github.com/rosjs/msggen/internal/source"
)

// watchDebounce coalesces editor save bursts into one regeneration.
const watchDebounce = 300 * time.Millisecond

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(cfg *config.GlobalConfig) *cobra.Command {
	var gf cmdutil.GenerateFlags

	c := &cobra.Command{
		Use:   "generate <package>",
		Short: "Generate the JS message module of a package",
		Long: `Resolve every message type of a ROS package and render it as a rosnodejs
message model module.

Nested message types are resolved recursively, so each model carries the
models of its struct fields. The module is written to <out-dir>/<package>.js.
Nothing is written when any type fails to resolve.

Arguments:
  package    ROS package name, e.g. geometry_msgs

Examples:
  # Generate from the installed ROS environment
  msggen generate geometry_msgs

  # Generate from a workspace and print to stdout
  msggen generate my_msgs --path ./src -o -

  # Only some types, plus one file per type
  msggen generate geometry_msgs --types Twist,Vector3 --split --out-dir ./models

  # Regenerate on every .msg change
  msggen generate my_msgs --path ./src --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c.Context(), args[0], cfg, &gf)
		},
	}

	gf.AddTo(c)
	return c
}

func runGenerate(ctx context.Context, pkg string, cfg *config.GlobalConfig, gf *cmdutil.GenerateFlags) error {
	session, err := cmdutil.OpenSession(cfg)
	if err != nil {
		return err
	}

	if gf.Watch && session.Options.Kind != source.KindDir {
		return oerrors.NewExitError(
			fmt.Errorf("--watch requires the dir source (use --path)"),
			oerrors.ExitValidationError,
		)
	}

	opts := pipeline.GenerateOptions{
		Package:      pkg,
		Types:        gf.Types,
		RosnodejsDir: cfg.Config.Output.RosnodejsDir,
		Split:        gf.Split,
	}

	if err := generateOnce(ctx, session, opts, cfg, gf); err != nil {
		return err
	}
	if !gf.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := output.PackageLogger(pkg)
	log.Info("watching for changes", "paths", session.Options.Paths)

	err = source.Watch(ctx, session.Options.Paths, watchDebounce, func() {
		session.Reset()
		if err := generateOnce(ctx, session, opts, cfg, gf); err != nil {
			log.Debug("regeneration failed", "error", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}
	return nil
}

// generateOnce resolves, renders and writes the package module.
func generateOnce(ctx context.Context, session *cmdutil.Session, opts pipeline.GenerateOptions, cfg *config.GlobalConfig, gf *cmdutil.GenerateFlags) error {
	var result *pipeline.GenerateResult
	err := runWork(ctx, cfg, "Resolving "+opts.Package+"...", func(ctx context.Context) error {
		var err error
		result, err = session.Pipeline.Generate(ctx, opts)
		return err
	})
	if err != nil {
		return cmdutil.Failure("generation failed", err)
	}

	outDir := gf.OutDir
	if outDir == "" {
		outDir = cfg.Config.Output.Dir
	}

	dest := gf.Output
	if dest == "" {
		dest = filepath.Join(outDir, result.Package+".js")
	}

	if err := cmdutil.WriteOutput(dest, []byte(result.Output)); err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}
	toStdout := dest == "-"
	if !toStdout {
		output.Println(output.FormatCheckmark(fmt.Sprintf("wrote %s (%s)",
			dest, output.FormatCount(len(result.Definitions), "type"))))
	}

	if gf.Split {
		written, err := output.WriteSplitModules(result.Modules, output.SplitOptions{OutDir: outDir})
		if err != nil {
			return oerrors.NewExitError(err, oerrors.ExitGeneralError)
		}
		if !toStdout {
			output.Println(output.FormatCheckmark(fmt.Sprintf("wrote %s to %s",
				output.FormatCount(len(written), "module file"), outDir)))
		}
	}

	if cfg.Verbose || gf.ReportJSON {
		report := output.ReportOptions{JSON: gf.ReportJSON, Writer: os.Stderr}
		if err := output.WriteResolutionReport(result.Package, dest, result.Definitions, report); err != nil {
			return oerrors.NewExitError(err, oerrors.ExitGeneralError)
		}
	}

	return nil
}
