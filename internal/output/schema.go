package output

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/rosjs/msggen/internal/core"
)

// WriteDefinitions writes resolved definitions to w. YAML and JSON share the
// definitions' json tags; tree renders each definition separated by a blank
// line.
func WriteDefinitions(defs []*core.Definition, format Format, w io.Writer) error {
	if format == FormatTree {
		for i, def := range defs {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, RenderDefinitionTree(def)); err != nil {
				return err
			}
		}
		return nil
	}

	if len(defs) == 1 {
		return Encode(defs[0], format, w)
	}
	return Encode(defs, format, w)
}

// Encode writes v as YAML or JSON.
func Encode(v any, format Format, w io.Writer) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("format %s not supported for encoding", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}
