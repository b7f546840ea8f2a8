// Package cmd provides CLI command implementations.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configcmd "github.com/rosjs/msggen/internal/cmd/config"
	"github.com/rosjs/msggen/internal/config"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/source"
)

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	config     string
	source     string
	paths      []string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the msggen CLI.
func NewRootCmd() *cobra.Command {
	var flags globalFlags
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "msggen",
		Short: "ROS message schema resolver and JS model generator",
		Long: `msggen resolves ROS message definitions, including every nested message
type they reference, and renders them as rosnodejs message model modules.

Definitions are read either from an installed ROS environment through the
rosmsg tool (--source rosmsg) or from .msg files under search paths
(--source dir --path <dir>).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: MSGGEN_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.source, "source", "", "Schema source: rosmsg or dir (env: MSGGEN_SOURCE)")
	rootCmd.PersistentFlags().StringArrayVarP(&flags.paths, "path", "p", nil, "Search path for .msg files, implies --source dir (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewGenerateCmd(cfg),
		NewShowCmd(cfg),
		NewListCmd(cfg),
		NewSnapshotCmd(cfg),
		NewDiffCmd(cfg),
		configcmd.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads configuration, applies flag overrides and sets up
// logging. The result is stored in cfg for every sub-command.
func initializeGlobals(c *cobra.Command, cfg *config.GlobalConfig, flags *globalFlags) error {
	pathResult, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return oerrors.NewExitError(fmt.Errorf("resolving config path: %w", err), oerrors.ExitGeneralError)
	}

	loader := config.NewLoader()
	loaded, err := loader.Load(pathResult.ConfigPath)
	if err != nil {
		// config vet reports the details; other commands keep working on defaults.
		output.Warn("ignoring config file", "path", pathResult.ConfigPath, "error", err)
		loaded = config.DefaultConfig()
	}
	resolved := loader.ResolveAll()

	if c.Flags().Changed("source") {
		loaded.Source.Kind = flags.source
		resolved = config.ApplyFlag(resolved, "source.kind", flags.source)
	}
	if len(flags.paths) > 0 {
		loaded.Source.Paths = flags.paths
		resolved = config.ApplyFlag(resolved, "source.paths", flags.paths)
		if !c.Flags().Changed("source") {
			loaded.Source.Kind = source.KindDir
			resolved = config.ApplyFlag(resolved, "source.kind", source.KindDir)
		}
	}
	if c.Flags().Changed("timestamps") {
		loaded.Log.Timestamps = output.BoolPtr(flags.timestamps)
		resolved = config.ApplyFlag(resolved, "log.timestamps", flags.timestamps)
	}

	output.SetupLogging(output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: loaded.Log.Timestamps,
	})

	*cfg = config.GlobalConfig{
		Config:     loaded,
		ConfigPath: pathResult.ConfigPath,
		Resolved:   resolved,
		SourceFlag: flags.source,
		PathFlags:  flags.paths,
		Verbose:    flags.verbose,
	}

	if flags.verbose {
		output.Debug("initializing CLI",
			"config", pathResult.ConfigPath,
			"configSource", pathResult.Source,
		)
		config.LogResolvedValues(resolved)
	}

	return nil
}

// runWork runs action behind a spinner unless verbose logging would
// interleave with it.
func runWork(ctx context.Context, cfg *config.GlobalConfig, title string, action func(context.Context) error) error {
	if cfg.Verbose {
		return action(ctx)
	}
	return output.RunWithSpinner(ctx, action, output.WithTitle(title))
}
