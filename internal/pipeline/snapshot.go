package pipeline

import (
	"context"
	"fmt"
	"slices"

	"sigs.k8s.io/yaml"

	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
	"github.com/rosjs/msggen/internal/output"
)

// Snapshot is the persisted form of a resolved package.
type Snapshot struct {
	Package string             `json:"package"`
	Types   []*core.Definition `json:"types"`
}

// Marshal encodes the snapshot as YAML.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Snapshot resolves pkg into a Snapshot.
func (p *Pipeline) Snapshot(ctx context.Context, pkg string) (*Snapshot, error) {
	defs, err := p.resolver.ResolveAll(ctx, pkg)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Package: pkg, Types: defs}, nil
}

// DiffResult lists how the current resolution differs from a snapshot.
type DiffResult struct {
	Added    []string
	Removed  []string
	Modified []output.ModifiedItem
}

// Empty reports whether nothing changed.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// savedSnapshot is a snapshot decoded without interpreting its definitions.
type savedSnapshot struct {
	Package string           `json:"package"`
	Types   []map[string]any `json:"types"`
}

// Compare diffs a saved YAML snapshot against current, type by type.
func Compare(saved []byte, current *Snapshot, useColor bool) (*DiffResult, error) {
	var old savedSnapshot
	if err := yaml.Unmarshal(saved, &old); err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("snapshot is not valid YAML: %v", err),
			"", "",
			"create snapshots with msggen snapshot <package>",
		)
	}
	if old.Package != "" && old.Package != current.Package {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("snapshot is of package %q, not %q", old.Package, current.Package),
			current.Package, "", "",
		)
	}

	before := make(map[string][]byte, len(old.Types))
	var beforeOrder []string
	for i, raw := range old.Types {
		name, _ := raw["type"].(string)
		if name == "" {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("snapshot entry %d has no type", i),
				current.Package, "type", "",
			)
		}
		data, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("re-encoding %s: %w", name, err)
		}
		before[name] = data
		beforeOrder = append(beforeOrder, name)
	}

	result := &DiffResult{}
	seen := make(map[string]bool, len(current.Types))

	for _, def := range current.Types {
		seen[def.TypeName] = true
		data, err := yaml.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", def.TypeName, err)
		}

		prev, ok := before[def.TypeName]
		if !ok {
			result.Added = append(result.Added, def.TypeName)
			continue
		}
		diff, err := output.DiffYAML(prev, data, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", def.TypeName, err)
		}
		if diff != "" {
			result.Modified = append(result.Modified, output.ModifiedItem{Name: def.TypeName, Diff: diff})
		}
	}

	for _, name := range beforeOrder {
		if !seen[name] {
			result.Removed = append(result.Removed, name)
		}
	}
	slices.Sort(result.Removed)

	return result, nil
}
