package templates

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rosjs/msggen/internal/core"
)

// DefaultRosnodejsDir is the module the generated package requires ros from.
const DefaultRosnodejsDir = "rosnodejs"

// PackageOptions controls package module rendering.
type PackageOptions struct {
	// RosnodejsDir is the require() path of the rosnodejs module. Empty means
	// DefaultRosnodejsDir.
	RosnodejsDir string
}

// packageData is the data passed to package.js.tmpl.
type packageData struct {
	Package      string
	RosnodejsDir string
	Messages     []*messageModel
}

// messageModel is the data passed to message.js.tmpl.
type messageModel struct {
	TypeName    string
	Fingerprint string
	FieldNames  []string
	FieldTypes  orderedTypes
	Fields      []core.FieldSpec
	Nested      []nestedField
}

// nestedField is a struct-typed field and the model of its definition.
type nestedField struct {
	Name  string
	Array bool
	Model *messageModel
}

// orderedTypes encodes as a JSON object keeping field declaration order.
type orderedTypes []core.FieldSpec

// MarshalJSON implements json.Marshaler.
func (o orderedTypes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := toJSON(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := toJSON(f.Type)
		if err != nil {
			return nil, err
		}
		buf.WriteString(key)
		buf.WriteByte(':')
		buf.WriteString(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// newMessageModel builds the template model of def and, recursively, of
// every struct field definition.
func newMessageModel(def *core.Definition) (*messageModel, error) {
	m := &messageModel{
		TypeName:    def.TypeName,
		Fingerprint: def.Fingerprint,
		FieldNames:  make([]string, 0, len(def.Fields)),
		FieldTypes:  orderedTypes(def.Fields),
		Fields:      def.Fields,
	}

	for _, f := range def.Fields {
		m.FieldNames = append(m.FieldNames, f.Name)
		if !f.IsStruct() {
			continue
		}
		child := def.StructFields[f.Name]
		if child == nil {
			return nil, fmt.Errorf("%s.%s: struct field %s is not resolved", def.TypeName, f.Name, f.Type)
		}
		childModel, err := newMessageModel(child)
		if err != nil {
			return nil, err
		}
		m.Nested = append(m.Nested, nestedField{
			Name:  f.Name,
			Array: f.IsArray(),
			Model: childModel,
		})
	}

	return m, nil
}

// RenderMessage renders the JavaScript model of a single resolved
// definition, nested models included.
func RenderMessage(def *core.Definition) (string, error) {
	model, err := newMessageModel(def)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := root.ExecuteTemplate(&buf, messageTemplate, model); err != nil {
		return "", fmt.Errorf("rendering %s: %w", def.TypeName, err)
	}
	return buf.String(), nil
}

// RenderPackage renders a module exposing one model per definition, in the
// order given, under the package namespace pkg.
func RenderPackage(pkg string, defs []*core.Definition, opts PackageOptions) (string, error) {
	if pkg == "" || strings.ContainsAny(pkg, "/ .-") {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	data := packageData{
		Package:      pkg,
		RosnodejsDir: opts.RosnodejsDir,
		Messages:     make([]*messageModel, 0, len(defs)),
	}
	if data.RosnodejsDir == "" {
		data.RosnodejsDir = DefaultRosnodejsDir
	}

	for _, def := range defs {
		model, err := newMessageModel(def)
		if err != nil {
			return "", err
		}
		data.Messages = append(data.Messages, model)
	}

	var buf bytes.Buffer
	if err := root.ExecuteTemplate(&buf, packageTemplate, data); err != nil {
		return "", fmt.Errorf("rendering package %s: %w", pkg, err)
	}
	return buf.String(), nil
}
