// Package errors holds the error categories shared by the resolver, the
// schema sources and the CLI.
package errors

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrValidation marks definitions, options or config that are malformed.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a missing message type, package, snapshot or file.
	ErrNotFound = errors.New("not found")

	// ErrSource marks a schema source that could not be queried.
	ErrSource = errors.New("schema source error")
)

// DetailError is a categorized failure with enough context to tell the user
// what to do next. Its category is the sentinel in Cause.
type DetailError struct {
	Type     string
	Message  string
	Location string // message type, package or file
	Field    string
	Context  map[string]string
	Hint     string
	Cause    error
}

// Error renders the failure as a headline followed by indented details:
//
//	validation failed: cannot parse "abc" as int32
//	  at std_msgs/Int32.data
//	  source: rosmsg
//	hint: check the constant value
func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Type, e.Message)

	switch {
	case e.Location != "" && e.Field != "":
		fmt.Fprintf(&b, "  at %s.%s\n", e.Location, e.Field)
	case e.Location != "":
		fmt.Fprintf(&b, "  at %s\n", e.Location)
	case e.Field != "":
		fmt.Fprintf(&b, "  field %s\n", e.Field)
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, e.Context[k])
	}

	if e.Hint != "" {
		fmt.Fprintf(&b, "hint: %s\n", e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports a malformed definition, option or config value.
// location and field may be empty.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError reports a missing snapshot or file that the user can
// create, with hint naming the command that does it.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewSourceError reports a failed schema source query. context carries the
// command or path that was tried.
func NewSourceError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "schema source failed",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrSource,
	}
}
