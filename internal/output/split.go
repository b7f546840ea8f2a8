package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ModuleFile is one rendered message module destined for its own file.
type ModuleFile struct {
	TypeName string
	Content  string
}

// SplitOptions controls split file output.
type SplitOptions struct {
	// Fs is the destination filesystem. nil means the OS filesystem.
	Fs afero.Fs
	// OutDir is the directory for split output.
	OutDir string
}

// WriteSplitModules writes each module to <package>_<Type>.js under OutDir
// and returns the written paths in input order.
func WriteSplitModules(files []ModuleFile, opts SplitOptions) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if err := fs.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	usedNames := make(map[string]int)
	paths := make([]string, 0, len(files))

	for _, file := range files {
		path := filepath.Join(opts.OutDir, buildModuleFilename(file.TypeName, usedNames))
		if err := afero.WriteFile(fs, path, []byte(file.Content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}

		Debug("wrote module file", "type", file.TypeName, "file", path)
		paths = append(paths, path)
	}

	return paths, nil
}

// buildModuleFilename creates a filename for a message type, suffixing
// repeated names with a counter.
func buildModuleFilename(typeName string, usedNames map[string]int) string {
	baseName := sanitizeName(typeName)

	count, exists := usedNames[baseName]
	if exists {
		usedNames[baseName] = count + 1
		return fmt.Sprintf("%s-%d.js", baseName, count+1)
	}

	usedNames[baseName] = 1
	return baseName + ".js"
}

// sanitizeName makes a type name safe for use in filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "",
		"<", "",
		">", "",
		"|", "-",
	)
	return replacer.Replace(name)
}
