// Package pipeline ties schema resolution to rendering: it resolves a
// package or a list of types and hands the definitions to the templates.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
)

// GenerateOptions selects what Generate resolves and how it renders.
type GenerateOptions struct {
	// Package is the message package and the namespace of the rendered module.
	Package string

	// Types restricts generation to these types. Bare names are qualified
	// with Package. Empty means every type of the package.
	Types []string

	// RosnodejsDir is the require() path of rosnodejs in the generated module.
	RosnodejsDir string

	// Split additionally renders one module per message type.
	Split bool
}

// Validate checks the options and qualifies bare type names.
func (o *GenerateOptions) Validate() error {
	if o.Package == "" {
		return oerrors.NewValidationError("package name is required", "", "", "msggen generate <package>")
	}
	if strings.ContainsAny(o.Package, "/ ") {
		return oerrors.NewValidationError(
			fmt.Sprintf("%q is not a package name", o.Package),
			o.Package, "",
			"pass the package (std_msgs), not a message type (std_msgs/String)",
		)
	}

	for i, t := range o.Types {
		t = strings.TrimSpace(t)
		if t == "" {
			return oerrors.NewValidationError("empty type name in --types", o.Package, "", "")
		}
		o.Types[i] = core.QualifyType(t, o.Package)
	}
	return nil
}

// GenerateResult is the outcome of a successful Generate.
type GenerateResult struct {
	// Package is the rendered package namespace.
	Package string

	// Definitions are the resolved definitions in render order.
	Definitions []*core.Definition

	// Output is the rendered package module.
	Output string

	// Modules holds one rendered module per type when Split was set.
	Modules []output.ModuleFile
}
