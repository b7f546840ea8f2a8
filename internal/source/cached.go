package source

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rosjs/msggen/internal/resolver"
)

// Cached memoizes a source's answers in bounded LRU caches. Concurrent
// queries for the same key share one upstream call. Failures are not cached.
type Cached struct {
	src resolver.Source

	listings     *lru.Cache[string, []string]
	texts        *lru.Cache[string, string]
	fingerprints *lru.Cache[string, string]

	group singleflight.Group
}

// NewCached wraps src with caches holding up to size entries each.
func NewCached(src resolver.Source, size int) (*Cached, error) {
	listings, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("creating listing cache: %w", err)
	}
	texts, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating definition cache: %w", err)
	}
	fingerprints, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating fingerprint cache: %w", err)
	}

	return &Cached{
		src:          src,
		listings:     listings,
		texts:        texts,
		fingerprints: fingerprints,
	}, nil
}

// ListTypes implements resolver.Source.
func (c *Cached) ListTypes(ctx context.Context, pkg string) ([]string, error) {
	if types, ok := c.listings.Get(pkg); ok {
		return append([]string(nil), types...), nil
	}
	v, err, _ := c.group.Do("package:"+pkg, func() (any, error) {
		types, err := c.src.ListTypes(ctx, pkg)
		if err != nil {
			return nil, err
		}
		c.listings.Add(pkg, types)
		return types, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), v.([]string)...), nil
}

// DefinitionText implements resolver.Source.
func (c *Cached) DefinitionText(ctx context.Context, typeName string) (string, error) {
	return c.lookup(ctx, c.texts, "show:", typeName, c.src.DefinitionText)
}

// Fingerprint implements resolver.Source.
func (c *Cached) Fingerprint(ctx context.Context, typeName string) (string, error) {
	return c.lookup(ctx, c.fingerprints, "md5:", typeName, c.src.Fingerprint)
}

func (c *Cached) lookup(
	ctx context.Context,
	cache *lru.Cache[string, string],
	prefix, typeName string,
	fetch func(context.Context, string) (string, error),
) (string, error) {
	if v, ok := cache.Get(typeName); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(prefix+typeName, func() (any, error) {
		v, err := fetch(ctx, typeName)
		if err != nil {
			return "", err
		}
		cache.Add(typeName, v)
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Reset drops every cached entry and resets the wrapped source when it
// keeps its own index.
func (c *Cached) Reset() {
	c.listings.Purge()
	c.texts.Purge()
	c.fingerprints.Purge()
	if r, ok := c.src.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Unwrap returns the wrapped source.
func (c *Cached) Unwrap() resolver.Source {
	return c.src
}
