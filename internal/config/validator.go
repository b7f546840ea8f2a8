package config

import (
	"embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/hashicorp/go-multierror"

	oerrors "github.com/rosjs/msggen/internal/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// FieldError is a single invalid configuration value.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every problem found in one configuration.
// It matches oerrors.ErrValidation.
type ValidationError struct {
	Errs *multierror.Error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Errs.Error()
}

// Unwrap exposes the sentinel and the individual field errors.
func (e *ValidationError) Unwrap() []error {
	return append([]error{oerrors.ErrValidation}, e.Errs.Errors...)
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate validates the given configuration. All problems are reported
// together.
func (v *Validator) Validate(cfg *Config) error {
	var errs *multierror.Error

	value := v.ctx.Encode(cfg)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs = multierror.Append(errs, &FieldError{
				Field:   strings.Join(e.Path(), "."),
				Message: fmt.Sprintf(format, args...),
			})
		}
	}

	if cfg.Source.Kind == "dir" && len(cfg.Source.Paths) == 0 {
		errs = multierror.Append(errs, &FieldError{
			Field:   "source.paths",
			Message: "at least one path is required for the dir source",
		})
	}

	if errs == nil {
		return nil
	}

	errs.ErrorFormat = formatErrors
	return &ValidationError{Errs: errs}
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	loader.EnvFile = ""
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}

func formatErrors(errs []error) string {
	var sb strings.Builder
	sb.WriteString("config validation failed:")
	for _, err := range errs {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
