package source

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/rosjs/msggen/internal/core"
	"github.com/rosjs/msggen/internal/output"
)

// Dir reads .msg files from package directories below one or more search
// roots. A package "pkg" is any directory named pkg that contains a msg/
// subdirectory; the first root that has it wins.
type Dir struct {
	fs    afero.Fs
	roots []string

	mu    sync.Mutex
	index map[string]string
}

// NewDir creates a directory-backed source over the given search roots.
func NewDir(fs afero.Fs, roots ...string) *Dir {
	return &Dir{fs: fs, roots: roots}
}

// ListTypes returns the message types of pkg sorted by name.
func (d *Dir) ListTypes(_ context.Context, pkg string) ([]string, error) {
	msgDir, err := d.packageDir(pkg)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(d.fs, msgDir)
	if err != nil {
		return nil, &core.PackageNotFoundError{Package: pkg, Cause: err}
	}

	var types []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".msg" {
			continue
		}
		types = append(types, pkg+"/"+strings.TrimSuffix(e.Name(), ".msg"))
	}
	sort.Strings(types)

	if len(types) == 0 {
		return nil, &core.PackageNotFoundError{Package: pkg}
	}
	return types, nil
}

// DefinitionText returns the normalized declarations of typeName with
// comments removed.
func (d *Dir) DefinitionText(_ context.Context, typeName string) (string, error) {
	lines, err := d.declarations(typeName)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Fingerprint computes the ROS MD5 sum of typeName.
func (d *Dir) Fingerprint(ctx context.Context, typeName string) (string, error) {
	return d.md5(ctx, core.CanonicalType(typeName), nil)
}

func (d *Dir) md5(ctx context.Context, typeName string, chain []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, seen := range chain {
		if seen == typeName {
			return "", &core.CyclicDefinitionError{Chain: append(append([]string{}, chain...), typeName)}
		}
	}
	chain = append(chain, typeName)

	lines, err := d.declarations(typeName)
	if err != nil {
		return "", err
	}

	pkg := core.PackageOf(typeName)
	var constants, fields []string
	for _, line := range lines {
		decl, literal, isConstant := strings.Cut(line, "=")
		typeToken, name, _ := strings.Cut(decl, " ")
		if isConstant {
			constants = append(constants, typeToken+" "+name+"="+literal)
			continue
		}
		if !core.IsStructType(typeToken) {
			fields = append(fields, typeToken+" "+name)
			continue
		}
		child, err := d.md5(ctx, core.QualifyType(typeToken, pkg), chain)
		if err != nil {
			return "", err
		}
		fields = append(fields, child+" "+name)
	}

	text := strings.TrimSpace(strings.Join(append(constants, fields...), "\n"))
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// declarations reads typeName's .msg file and returns one normalized
// "type name" or "type name=value" line per declaration.
func (d *Dir) declarations(typeName string) ([]string, error) {
	pkg, name, ok := strings.Cut(typeName, "/")
	if !ok || pkg == "" || name == "" {
		return nil, &core.DefinitionNotFoundError{TypeName: typeName}
	}

	msgDir, err := d.packageDir(pkg)
	if err != nil {
		return nil, &core.DefinitionNotFoundError{TypeName: typeName, Cause: err}
	}

	path := filepath.Join(msgDir, name+".msg")
	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, &core.DefinitionNotFoundError{TypeName: typeName}
		}
		return nil, err
	}

	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		if line, ok := normalizeDeclaration(raw); ok {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// normalizeDeclaration strips comments and collapses whitespace. Whether a
// line is a constant is decided on its comment-free part; string constants
// then keep everything after "=" verbatim, including '#'.
func normalizeDeclaration(raw string) (string, bool) {
	line := strings.TrimSpace(raw)

	stripped := line
	if i := strings.IndexByte(stripped, '#'); i >= 0 {
		stripped = strings.TrimSpace(stripped[:i])
	}
	if stripped == "" {
		return "", false
	}

	decl, literal, isConstant := strings.Cut(stripped, "=")
	parts := strings.Fields(decl)
	if len(parts) != 2 {
		return "", false
	}
	if !isConstant {
		return parts[0] + " " + parts[1], true
	}
	if parts[0] == "string" {
		_, literal, _ = strings.Cut(line, "=")
	}
	return parts[0] + " " + parts[1] + "=" + strings.TrimSpace(literal), true
}

func (d *Dir) packageDir(pkg string) (string, error) {
	d.mu.Lock()
	if d.index == nil {
		d.index = d.buildIndex()
	}
	msgDir, ok := d.index[pkg]
	d.mu.Unlock()

	if !ok {
		return "", &core.PackageNotFoundError{Package: pkg}
	}
	return msgDir, nil
}

// buildIndex maps every package below the roots to its msg directory.
func (d *Dir) buildIndex() map[string]string {
	index := map[string]string{}

	for _, root := range d.roots {
		err := afero.Walk(d.fs, root, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				return nil
			}
			if !info.IsDir() || info.Name() != "msg" {
				return nil
			}
			pkg := filepath.Base(filepath.Dir(path))
			if _, exists := index[pkg]; !exists {
				index[pkg] = path
			}
			return filepath.SkipDir
		})
		if err != nil {
			output.Warn("skipping search root", "path", root, "err", err)
		}
	}

	output.Debug("indexed message packages", "roots", len(d.roots), "packages", len(index))
	return index
}

// Reset forgets the package index so the next query rescans the roots.
func (d *Dir) Reset() {
	d.mu.Lock()
	d.index = nil
	d.mu.Unlock()
}

// Roots returns the search roots.
func (d *Dir) Roots() []string {
	return d.roots
}
