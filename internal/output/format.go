package output

import "strings"

// Format specifies how resolved definitions are printed.
type Format string

const (
	// FormatYAML outputs the schema tree as YAML.
	FormatYAML Format = "yaml"

	// FormatJSON outputs the schema tree as JSON.
	FormatJSON Format = "json"

	// FormatTree outputs a human-readable box-drawing tree.
	FormatTree Format = "tree"

	// FormatJS outputs the rendered JavaScript message model.
	FormatJS Format = "js"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Valid checks if the format is known.
func (f Format) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTree, FormatJS:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name. The boolean is false for unknown names.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "tree":
		return FormatTree, true
	case "js", "javascript":
		return FormatJS, true
	default:
		return "", false
	}
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"yaml", "json", "tree", "js"}
}
