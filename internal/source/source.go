// Package source provides the schema sources the resolver reads message
// definitions from.
package source

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/resolver"
)

// Source kinds.
const (
	KindRosmsg = "rosmsg"
	KindDir    = "dir"
)

// Options selects and configures a schema source.
type Options struct {
	// Kind is KindRosmsg or KindDir.
	Kind string

	// Rosmsg is the rosmsg executable for KindRosmsg.
	Rosmsg string

	// Paths are the search roots for KindDir.
	Paths []string

	// MaxProcs bounds concurrent rosmsg processes. < 1 means unbounded.
	MaxProcs int

	// CacheSize is the number of entries each cache holds. 0 disables caching.
	CacheSize int

	// Fs is the filesystem for KindDir. nil means the OS filesystem.
	Fs afero.Fs
}

// Open builds the source described by opts.
func Open(opts Options) (resolver.Source, error) {
	var src resolver.Source

	switch opts.Kind {
	case KindRosmsg, "":
		src = NewRosmsg(opts.Rosmsg, opts.MaxProcs)
	case KindDir:
		if len(opts.Paths) == 0 {
			return nil, oerrors.NewValidationError(
				"no search paths configured for the dir source",
				"source.paths", "",
				"pass --path or set source.paths in the config file",
			)
		}
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		src = NewDir(fs, opts.Paths...)
	default:
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("unknown source kind %q", opts.Kind),
			"source.kind", "",
			"use one of: "+strings.Join([]string{KindRosmsg, KindDir}, ", "),
		)
	}

	if opts.CacheSize > 0 {
		cached, err := NewCached(src, opts.CacheSize)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}
	return src, nil
}

// CleanText drops blank lines and every line not starting at column zero
// (nested definitions printed by rosmsg show), trimming the rest.
func CleanText(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
