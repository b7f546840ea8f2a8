package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rosjs/msggen/internal/core"
)

// ReportOptions controls the resolution report.
type ReportOptions struct {
	// JSON outputs structured JSON instead of human-readable text
	JSON bool
	// Writer is the output destination
	Writer io.Writer
}

// resolutionReport is the structured report of a package resolution.
type resolutionReport struct {
	Package string         `json:"package"`
	Output  string         `json:"output,omitempty"`
	Types   []reportedType `json:"types"`
}

// reportedType summarizes one resolved definition.
type reportedType struct {
	Type        string   `json:"type"`
	Md5sum      string   `json:"md5sum"`
	Fields      int      `json:"fields"`
	Constants   int      `json:"constants"`
	NestedTypes []string `json:"nestedTypes,omitempty"`
}

// WriteResolutionReport writes a summary of the resolved definitions of pkg.
// dest names where the rendered module went and may be empty.
func WriteResolutionReport(pkg, dest string, defs []*core.Definition, opts ReportOptions) error {
	report := buildResolutionReport(pkg, dest, defs)

	if opts.JSON {
		return writeReportJSON(report, opts.Writer)
	}
	return writeReportHuman(report, opts.Writer)
}

func buildResolutionReport(pkg, dest string, defs []*core.Definition) *resolutionReport {
	report := &resolutionReport{
		Package: pkg,
		Output:  dest,
		Types:   make([]reportedType, 0, len(defs)),
	}

	for _, def := range defs {
		rt := reportedType{Type: def.TypeName, Md5sum: def.Fingerprint}
		for _, f := range def.Fields {
			if f.Default.IsLiteral() {
				rt.Constants++
			} else {
				rt.Fields++
			}
		}
		seen := map[string]bool{}
		collectNested(def, seen, &rt.NestedTypes)
		report.Types = append(report.Types, rt)
	}

	return report
}

// collectNested appends every distinct nested type name in depth-first order.
func collectNested(def *core.Definition, seen map[string]bool, out *[]string) {
	for _, name := range def.StructFieldNames() {
		child := def.StructFields[name]
		if child == nil {
			continue
		}
		if !seen[child.TypeName] {
			seen[child.TypeName] = true
			*out = append(*out, child.TypeName)
		}
		collectNested(child, seen, out)
	}
}

func writeReportJSON(report *resolutionReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func writeReportHuman(report *resolutionReport, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Package:\n")
	sb.WriteString(fmt.Sprintf("  Name:   %s\n", report.Package))
	sb.WriteString(fmt.Sprintf("  Types:  %d\n", len(report.Types)))
	if report.Output != "" {
		sb.WriteString(fmt.Sprintf("  Output: %s\n", report.Output))
	}
	sb.WriteString("\n")

	if len(report.Types) > 0 {
		sb.WriteString("Resolved Types:\n")
		for _, rt := range report.Types {
			sb.WriteString("  " + FormatTypeLine(rt.Type, rt.Md5sum) + "\n")
			sb.WriteString(fmt.Sprintf("    %s, %s\n", FormatCount(rt.Fields, "field"), FormatCount(rt.Constants, "constant")))
			if len(rt.NestedTypes) > 0 {
				sb.WriteString(fmt.Sprintf("    nested: %s\n", strings.Join(rt.NestedTypes, ", ")))
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
