package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
)

// DefaultRosmsg is the rosmsg executable looked up on PATH.
const DefaultRosmsg = "rosmsg"

// Rosmsg queries message definitions through the rosmsg command line tool.
type Rosmsg struct {
	// Path is the rosmsg executable.
	Path string

	sem *semaphore.Weighted
}

// NewRosmsg creates a rosmsg-backed source. maxProcs bounds how many rosmsg
// processes run at once; < 1 means unbounded.
func NewRosmsg(path string, maxProcs int) *Rosmsg {
	r := &Rosmsg{Path: path}
	if maxProcs > 0 {
		r.sem = semaphore.NewWeighted(int64(maxProcs))
	}
	return r
}

// ListTypes runs `rosmsg package <pkg>`.
func (r *Rosmsg) ListTypes(ctx context.Context, pkg string) ([]string, error) {
	out, err := r.runCapture(ctx, "package", pkg)
	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return nil, &core.PackageNotFoundError{Package: pkg, Cause: err}
		}
		return nil, err
	}

	types := strings.Fields(string(out))
	if len(types) == 0 {
		return nil, &core.PackageNotFoundError{Package: pkg}
	}
	return types, nil
}

// DefinitionText runs `rosmsg show <type>` and cleans the output.
func (r *Rosmsg) DefinitionText(ctx context.Context, typeName string) (string, error) {
	out, err := r.runCapture(ctx, "show", typeName)
	if err != nil {
		return "", r.notFound(typeName, err)
	}
	return CleanText(string(out)), nil
}

// Fingerprint runs `rosmsg md5 <type>`.
func (r *Rosmsg) Fingerprint(ctx context.Context, typeName string) (string, error) {
	out, err := r.runCapture(ctx, "md5", typeName)
	if err != nil {
		return "", r.notFound(typeName, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *Rosmsg) notFound(typeName string, err error) error {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return &core.DefinitionNotFoundError{TypeName: typeName, Cause: err}
	}
	return err
}

// exitError is a rosmsg invocation that ran and exited non-zero.
type exitError struct {
	args   []string
	code   int
	stderr string
}

func (e *exitError) Error() string {
	msg := fmt.Sprintf("rosmsg %s failed with exit code %d", strings.Join(e.args, " "), e.code)
	if e.stderr != "" {
		msg += ": " + e.stderr
	}
	return msg
}

// runCapture executes a rosmsg command and captures its output.
func (r *Rosmsg) runCapture(ctx context.Context, args ...string) ([]byte, error) {
	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer r.sem.Release(1)
	}

	output.Debug("running rosmsg", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &exitError{
				args:   args,
				code:   exitErr.ExitCode(),
				stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return nil, fmt.Errorf("rosmsg %s: %w", strings.Join(args, " "), oerrors.NewSourceError(
			err.Error(),
			map[string]string{"executable": r.path()},
			"install ROS or point source.rosmsg at the rosmsg executable",
		))
	}

	return stdout.Bytes(), nil
}

func (r *Rosmsg) path() string {
	if r.Path != "" {
		return r.Path
	}
	return DefaultRosmsg
}
