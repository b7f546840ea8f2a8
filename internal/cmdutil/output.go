package cmdutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
)

// PrintResolutionError prints a resolution failure in a user-friendly format.
// Nested failures are shown as the field path that led to them, followed by
// the innermost cause and any hint.
func PrintResolutionError(msg string, err error) {
	path := ResolutionPath(err)
	var detail *oerrors.DetailError

	switch {
	case len(path) > 0:
		output.Error(fmt.Sprintf("%s: %s", msg, rootCause(err)))
		output.Info("while resolving:")
		for i, step := range path {
			output.Info(strings.Repeat("  ", i+1) + step)
		}
	case errors.As(err, &detail):
		output.Error(msg, "error", detail.Message)
		if detail.Hint != "" {
			output.Info("hint: " + detail.Hint)
		}
	default:
		output.Error(msg, "error", err)
	}
}

// ResolutionPath lists the fields a nested resolution failure passed
// through, outermost first, as "pkg/Type.field -> pkg/FieldType".
func ResolutionPath(err error) []string {
	var path []string
	for err != nil {
		var re *core.ResolutionError
		if !errors.As(err, &re) {
			break
		}
		path = append(path, fmt.Sprintf("%s.%s -> %s", re.TypeName, re.Field, re.FieldType))
		err = re.Cause
	}
	return path
}

// rootCause returns the innermost error below any resolution errors.
func rootCause(err error) error {
	for {
		var re *core.ResolutionError
		if !errors.As(err, &re) || re.Cause == nil {
			return err
		}
		err = re.Cause
	}
}

// Failure prints err and returns it as an already printed *oerrors.ExitError
// with the code matching its category.
func Failure(msg string, err error) error {
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	PrintResolutionError(msg, err)
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}

// WriteOutput writes data to path, creating parent directories. An empty
// path or "-" writes to stdout.
func WriteOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
