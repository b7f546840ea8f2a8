package pipeline

import (
	"context"
	"slices"

	"github.com/rosjs/msggen/internal/core"
	"github.com/rosjs/msggen/internal/output"
	"github.com/rosjs/msggen/internal/resolver"
	"github.com/rosjs/msggen/internal/templates"
)

// Pipeline resolves definitions through a resolver and renders them.
type Pipeline struct {
	resolver *resolver.Resolver
}

// New creates a Pipeline over r.
func New(r *resolver.Resolver) *Pipeline {
	return &Pipeline{resolver: r}
}

// Generate resolves the selected types and renders the package module.
// Any resolution or rendering failure aborts with no partial output.
func (p *Pipeline) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	opts.Types = slices.Clone(opts.Types)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := output.PackageLogger(opts.Package)

	defs, err := p.resolve(ctx, opts.Package, opts.Types)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved definitions", "types", len(defs))

	pkgOpts := templates.PackageOptions{RosnodejsDir: opts.RosnodejsDir}
	rendered, err := templates.RenderPackage(opts.Package, defs, pkgOpts)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Package:     opts.Package,
		Definitions: defs,
		Output:      rendered,
	}

	if opts.Split {
		for _, def := range defs {
			module, err := templates.RenderPackage(opts.Package, []*core.Definition{def}, pkgOpts)
			if err != nil {
				return nil, err
			}
			result.Modules = append(result.Modules, output.ModuleFile{TypeName: def.TypeName, Content: module})
		}
	}

	log.Info("rendered package", "types", len(defs))
	return result, nil
}

// Show resolves a single message type.
func (p *Pipeline) Show(ctx context.Context, typeName string) (*core.Definition, error) {
	return p.resolver.Resolve(ctx, typeName)
}

// Resolve resolves every type of pkg, or only types when given.
func (p *Pipeline) Resolve(ctx context.Context, pkg string, types []string) ([]*core.Definition, error) {
	return p.resolve(ctx, pkg, types)
}

func (p *Pipeline) resolve(ctx context.Context, pkg string, types []string) ([]*core.Definition, error) {
	if len(types) > 0 {
		return p.resolver.ResolveTypes(ctx, types)
	}
	return p.resolver.ResolveAll(ctx, pkg)
}
