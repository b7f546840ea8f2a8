package cmdutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
)

func nestedFailure() error {
	return &core.ResolutionError{
		TypeName:  "geometry_msgs/TwistStamped",
		Field:     "twist",
		FieldType: "geometry_msgs/Twist",
		Cause: &core.ResolutionError{
			TypeName:  "geometry_msgs/Twist",
			Field:     "linear",
			FieldType: "geometry_msgs/Vector3",
			Cause:     &core.DefinitionNotFoundError{TypeName: "geometry_msgs/Vector3"},
		},
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&buf)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })
	return &buf
}

func TestResolutionPath(t *testing.T) {
	assert.Equal(t, []string{
		"geometry_msgs/TwistStamped.twist -> geometry_msgs/Twist",
		"geometry_msgs/Twist.linear -> geometry_msgs/Vector3",
	}, ResolutionPath(nestedFailure()))

	assert.Empty(t, ResolutionPath(errors.New("plain")))
}

func TestPrintResolutionError_Nested(t *testing.T) {
	buf := captureLogs(t)

	PrintResolutionError("resolution failed", nestedFailure())

	out := buf.String()
	assert.Contains(t, out, "resolution failed")
	assert.Contains(t, out, "geometry_msgs/Vector3")
	assert.Contains(t, out, "while resolving")
	assert.Contains(t, out, "geometry_msgs/Twist.linear -> geometry_msgs/Vector3")
}

func TestPrintResolutionError_DetailHint(t *testing.T) {
	buf := captureLogs(t)

	err := oerrors.NewValidationError("no search paths", "source.paths", "", "pass --path")
	PrintResolutionError("opening schema source", err)

	out := buf.String()
	assert.Contains(t, out, "no search paths")
	assert.Contains(t, out, "hint: pass --path")
}

func TestFailure(t *testing.T) {
	captureLogs(t)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", &core.DefinitionNotFoundError{TypeName: "a/B"}, oerrors.ExitNotFound},
		{"nested not found", nestedFailure(), oerrors.ExitNotFound},
		{"validation", oerrors.NewValidationError("bad", "", "", ""), oerrors.ExitValidationError},
		{"other", errors.New("boom"), oerrors.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Failure("failed", tt.err)

			var exitErr *oerrors.ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.code, exitErr.Code)
			assert.True(t, exitErr.Printed)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFailure_KeepsExitError(t *testing.T) {
	orig := oerrors.NewExitError(errors.New("x"), oerrors.ExitSourceError)
	assert.Same(t, orig, Failure("ignored", orig))
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "std_msgs.js")

	require.NoError(t, WriteOutput(path, []byte("module")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "module", string(data))
}
