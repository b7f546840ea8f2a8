package cmdutil

import (
	"fmt"

	"github.com/rosjs/msggen/internal/config"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/pipeline"
	"github.com/rosjs/msggen/internal/resolver"
	"github.com/rosjs/msggen/internal/source"
)

// SourceOptions derives the schema source options from the resolved
// configuration, expanding ~ in search paths.
func SourceOptions(cfg *config.GlobalConfig) (source.Options, error) {
	if cfg == nil || cfg.Config == nil {
		return source.Options{}, fmt.Errorf("configuration not loaded")
	}

	src := cfg.Config.Source
	paths, err := config.ExpandPaths(src.Paths)
	if err != nil {
		return source.Options{}, fmt.Errorf("expanding source paths: %w", err)
	}

	return source.Options{
		Kind:      src.Kind,
		Rosmsg:    src.Rosmsg,
		Paths:     paths,
		MaxProcs:  src.MaxProcs,
		CacheSize: cfg.Config.Cache.Size,
	}, nil
}

// Session is an opened source with the pipeline reading from it.
type Session struct {
	Options  source.Options
	Source   resolver.Source
	Pipeline *pipeline.Pipeline
}

// Reset drops whatever the source has cached or indexed.
func (s *Session) Reset() {
	if r, ok := s.Source.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// OpenSession opens the configured schema source and builds the pipeline.
// On failure it returns an *oerrors.ExitError with the error already printed.
func OpenSession(cfg *config.GlobalConfig) (*Session, error) {
	opts, err := SourceOptions(cfg)
	if err != nil {
		return nil, oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}

	src, err := source.Open(opts)
	if err != nil {
		return nil, Failure("opening schema source", err)
	}

	output.Debug("opened schema source",
		"kind", opts.Kind,
		"paths", opts.Paths,
		"maxProcs", opts.MaxProcs,
		"cache", opts.CacheSize,
	)

	r := resolver.New(src, resolver.WithConcurrency(opts.MaxProcs))
	return &Session{
		Options:  opts,
		Source:   src,
		Pipeline: pipeline.New(r),
	}, nil
}
