// Package resolver builds closed Definition trees by following struct-typed
// fields through a schema source.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/rosjs/msggen/internal/core"
	"github.com/rosjs/msggen/internal/output"
)

// Source is the schema source the resolver queries. Implementations must be
// safe for concurrent use.
type Source interface {
	// ListTypes returns the qualified message types of pkg in the source's
	// order.
	ListTypes(ctx context.Context, pkg string) ([]string, error)

	// DefinitionText returns the cleaned top-level definition text of a type.
	DefinitionText(ctx context.Context, typeName string) (string, error)

	// Fingerprint returns the content hash of a type.
	Fingerprint(ctx context.Context, typeName string) (string, error)
}

// Resolver resolves message types into Definition trees.
type Resolver struct {
	src         Source
	concurrency int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConcurrency bounds how many types of a package are resolved at once.
// n < 1 means unbounded.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

// New creates a Resolver reading from src.
func New(src Source, opts ...Option) *Resolver {
	r := &Resolver{src: src}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches, parses and recursively resolves typeName.
func (r *Resolver) Resolve(ctx context.Context, typeName string) (*core.Definition, error) {
	return r.resolve(ctx, core.CanonicalType(typeName), nil)
}

// pendingField is a struct-typed field awaiting its sub-definition.
type pendingField struct {
	name     string
	typeName string
	def      *core.Definition
}

func (r *Resolver) resolve(ctx context.Context, typeName string, chain []string) (*core.Definition, error) {
	chain = append(slices.Clip(chain), typeName)

	output.Debug("resolving definition", "type", typeName, "depth", len(chain))

	text, err := r.src.DefinitionText(ctx, typeName)
	if err != nil {
		return nil, sourceError(typeName, err)
	}

	fields, err := core.ParseDefinitionText(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", typeName, err)
	}

	pkg := core.PackageOf(typeName)
	var pending []*pendingField
	for _, f := range fields {
		if !f.IsStruct() {
			continue
		}
		pending = append(pending, &pendingField{
			name:     f.Name,
			typeName: core.QualifyType(f.Type, pkg),
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	var fingerprint string
	g.Go(func() error {
		fp, err := r.src.Fingerprint(gctx, typeName)
		if err != nil {
			return sourceError(typeName, err)
		}
		fingerprint = fp
		return nil
	})

	for _, p := range pending {
		g.Go(func() error {
			if slices.Contains(chain, p.typeName) {
				return &core.ResolutionError{
					TypeName:  typeName,
					Field:     p.name,
					FieldType: p.typeName,
					Cause:     &core.CyclicDefinitionError{Chain: append(slices.Clone(chain), p.typeName)},
				}
			}
			def, err := r.resolve(gctx, p.typeName, chain)
			if err != nil {
				return &core.ResolutionError{
					TypeName:  typeName,
					Field:     p.name,
					FieldType: p.typeName,
					Cause:     err,
				}
			}
			p.def = def
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	def := &core.Definition{
		TypeName:    typeName,
		Fingerprint: fingerprint,
		Fields:      fields,
	}
	if len(pending) > 0 {
		def.StructFields = make(map[string]*core.Definition, len(pending))
		for _, p := range pending {
			def.StructFields[p.name] = p.def
		}
	}

	return def, nil
}

// ResolveAll resolves every message type of pkg, returning definitions in the
// order the source lists them.
func (r *Resolver) ResolveAll(ctx context.Context, pkg string) ([]*core.Definition, error) {
	types, err := r.src.ListTypes(ctx, pkg)
	if err != nil {
		var pnf *core.PackageNotFoundError
		if errors.As(err, &pnf) {
			return nil, err
		}
		return nil, fmt.Errorf("listing package %s: %w", pkg, err)
	}
	if len(types) == 0 {
		return nil, &core.PackageNotFoundError{Package: pkg}
	}

	output.Debug("resolving package", "package", pkg, "types", len(types))

	return r.ResolveTypes(ctx, types)
}

// ResolveTypes resolves the given message types concurrently and returns
// them in input order. The first failure aborts the whole call.
func (r *Resolver) ResolveTypes(ctx context.Context, types []string) ([]*core.Definition, error) {
	defs := make([]*core.Definition, len(types))

	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for i, typeName := range types {
		g.Go(func() error {
			def, err := r.Resolve(gctx, typeName)
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return defs, nil
}

// sourceError passes typed not-found errors through and annotates anything
// else with the type being fetched.
func sourceError(typeName string, err error) error {
	var dnf *core.DefinitionNotFoundError
	if errors.As(err, &dnf) {
		return err
	}
	return fmt.Errorf("fetching %s: %w", typeName, err)
}
