// Package cmdutil provides shared command utilities for msggen subcommands.
// It centralizes flag groups, pipeline construction from the resolved
// configuration, and error and output helpers.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// GenerateFlags holds the flags of commands that render JS modules.
type GenerateFlags struct {
	Types      []string
	OutDir     string
	Output     string
	Split      bool
	Watch      bool
	ReportJSON bool
}

// AddTo registers the generate flags on the given cobra command.
func (f *GenerateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.Types, "types", "t", nil,
		"Generate only these message types (comma separated, bare names use the package)")
	cmd.Flags().StringVar(&f.OutDir, "out-dir", "",
		"Directory for generated modules (default: output.dir from config)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "",
		"Write the package module to this file, or - for stdout")
	cmd.Flags().BoolVar(&f.Split, "split", false,
		"Also write one module per message type")
	cmd.Flags().BoolVarP(&f.Watch, "watch", "w", false,
		"Regenerate when .msg files change (dir source only)")
	cmd.Flags().BoolVar(&f.ReportJSON, "report-json", false,
		"Print the --verbose resolution report as JSON")
}

// FormatFlag holds the -o/--output format flag of read-only commands.
type FormatFlag struct {
	Format string
}

// AddTo registers the format flag with the given default.
func (f *FormatFlag) AddTo(cmd *cobra.Command, def string, valid string) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", def,
		"Output format: "+valid)
}

// OutputFlag holds the --output file flag of commands that write a document.
type OutputFlag struct {
	Path string
}

// AddTo registers the output file flag.
func (f *OutputFlag) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Path, "output", "o", "-",
		"Write to this file, or - for stdout")
}
