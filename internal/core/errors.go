package core

import (
	"fmt"
	"strings"

	oerrors "github.com/rosjs/msggen/internal/errors"
)

// MalformedDefaultError indicates a "=value" literal could not be interpreted
// as the field's declared type.
type MalformedDefaultError struct {
	Field   string
	Type    string
	Literal string
	Cause   error
}

func (e *MalformedDefaultError) Error() string {
	msg := fmt.Sprintf("field %q: cannot use %q as default for type %s", e.Field, e.Literal, e.Type)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedDefaultError) Unwrap() error {
	return e.Cause
}

// Is matches oerrors.ErrValidation.
func (e *MalformedDefaultError) Is(target error) bool {
	return target == oerrors.ErrValidation
}

// DefinitionNotFoundError indicates the schema source has no definition for
// a message type.
type DefinitionNotFoundError struct {
	TypeName string
	Cause    error
}

func (e *DefinitionNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("message type %q not found: %v", e.TypeName, e.Cause)
	}
	return fmt.Sprintf("message type %q not found", e.TypeName)
}

func (e *DefinitionNotFoundError) Unwrap() error {
	return e.Cause
}

// Is matches oerrors.ErrNotFound.
func (e *DefinitionNotFoundError) Is(target error) bool {
	return target == oerrors.ErrNotFound
}

// PackageNotFoundError indicates the schema source knows no such package, or
// the package defines no message types.
type PackageNotFoundError struct {
	Package string
	Cause   error
}

func (e *PackageNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("package %q not found: %v", e.Package, e.Cause)
	}
	return fmt.Sprintf("package %q not found", e.Package)
}

func (e *PackageNotFoundError) Unwrap() error {
	return e.Cause
}

// Is matches oerrors.ErrNotFound.
func (e *PackageNotFoundError) Is(target error) bool {
	return target == oerrors.ErrNotFound
}

// ResolutionError wraps the failure of a nested struct field resolution.
type ResolutionError struct {
	// TypeName is the definition whose field failed to resolve.
	TypeName string

	// Field is the struct-typed field.
	Field string

	// FieldType is the qualified message type of the field.
	FieldType string

	// Cause is the underlying failure.
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s.%s (%s): %v", e.TypeName, e.Field, e.FieldType, e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// CyclicDefinitionError indicates a message type transitively includes itself.
type CyclicDefinitionError struct {
	// Chain lists the types from the outermost definition to the repeated one.
	Chain []string
}

func (e *CyclicDefinitionError) Error() string {
	return "cyclic message definition: " + strings.Join(e.Chain, " -> ")
}

// Is matches oerrors.ErrValidation.
func (e *CyclicDefinitionError) Is(target error) bool {
	return target == oerrors.ErrValidation
}
