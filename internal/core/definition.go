// Package core holds the message schema model: the field grammar, type
// classification, and the resolved Definition tree handed to renderers.
package core

import (
	"encoding/json"
	"fmt"
)

// DefaultKind tags which variant a Default holds.
type DefaultKind int

const (
	// DefaultAbsent means the field has no default (scalar without a literal,
	// or a struct field whose value comes from its resolved definition).
	DefaultAbsent DefaultKind = iota

	// DefaultEmptySequence is the default of every array field.
	DefaultEmptySequence

	// DefaultLiteral carries a constant parsed from "=value".
	DefaultLiteral
)

// String returns the kind name.
func (k DefaultKind) String() string {
	switch k {
	case DefaultAbsent:
		return "absent"
	case DefaultEmptySequence:
		return "empty-sequence"
	case DefaultLiteral:
		return "literal"
	default:
		return fmt.Sprintf("DefaultKind(%d)", int(k))
	}
}

// Default is the per-field default value: Absent, EmptySequence, or
// Literal(value). Value is only meaningful for DefaultLiteral and holds one
// of bool, int64, uint64, float64 or string.
type Default struct {
	Kind  DefaultKind
	Value any
}

// Absent returns the absent default.
func Absent() Default { return Default{Kind: DefaultAbsent} }

// EmptySequence returns the empty array default.
func EmptySequence() Default { return Default{Kind: DefaultEmptySequence} }

// Literal returns a literal default holding v.
func Literal(v any) Default { return Default{Kind: DefaultLiteral, Value: v} }

// IsLiteral reports whether the default is a literal.
func (d Default) IsLiteral() bool { return d.Kind == DefaultLiteral }

// MarshalJSON encodes Absent as null, EmptySequence as [] and a literal as
// its value.
func (d Default) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DefaultEmptySequence:
		return []byte("[]"), nil
	case DefaultLiteral:
		return json.Marshal(d.Value)
	default:
		return []byte("null"), nil
	}
}

// FieldSpec is one declared field of a definition.
type FieldSpec struct {
	// Name is unique within the owning definition.
	Name string `json:"name"`

	// Type is the type token as written, with "Header" canonicalized.
	Type string `json:"type"`

	// Default is the field's default value.
	Default Default `json:"default"`
}

// IsArray reports whether the field is array typed.
func (f FieldSpec) IsArray() bool { return IsArrayType(f.Type) }

// IsStruct reports whether the field (or its element type) is a message type.
func (f FieldSpec) IsStruct() bool { return IsStructType(f.Type) }

// Definition is the resolved model of one message type. A Definition returned
// by the resolver is closed: every struct field has its full sub-tree attached
// in StructFields.
type Definition struct {
	// TypeName is the fully qualified name, e.g. "geometry_msgs/Twist".
	TypeName string `json:"type"`

	// Fingerprint is the content hash reported by the schema source.
	Fingerprint string `json:"md5sum"`

	// Fields in declaration order.
	Fields []FieldSpec `json:"fields"`

	// StructFields maps a field name to the resolved definition of its
	// message type (or array element type).
	StructFields map[string]*Definition `json:"fieldMessages,omitempty"`
}

// Field returns the field with the given name.
func (d *Definition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// DefaultValue returns the default for the named field.
func (d *Definition) DefaultValue(name string) Default {
	f, ok := d.Field(name)
	if !ok {
		return Absent()
	}
	return f.Default
}

// FieldNames returns field names in declaration order.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// FieldTypes maps field names to their type tokens.
func (d *Definition) FieldTypes() map[string]string {
	types := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		types[f.Name] = f.Type
	}
	return types
}

// StructFieldNames returns the names of struct-typed fields in declaration
// order.
func (d *Definition) StructFieldNames() []string {
	var names []string
	for _, f := range d.Fields {
		if f.IsStruct() {
			names = append(names, f.Name)
		}
	}
	return names
}

// IsComplete reports whether every struct field, recursively, has a resolved
// definition attached.
func (d *Definition) IsComplete() bool {
	for _, name := range d.StructFieldNames() {
		child, ok := d.StructFields[name]
		if !ok || child == nil || !child.IsComplete() {
			return false
		}
	}
	return true
}
