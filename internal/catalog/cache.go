// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"querysmith/cli/internal/logging"
)

// SchemaSource renders the live schema as the text the generator consumes.
type SchemaSource interface {
	SchemaText(ctx context.Context) (string, error)
}

// Generator produces use cases from a schema text rendering.
type Generator interface {
	GenerateUseCases(ctx context.Context, schemaText string) ([]UseCase, error)
}

// Cache builds the catalog lazily and keeps it in memory until invalidated.
// Concurrent first-access callers within one invalidation epoch share a
// single generation pass.
type Cache struct {
	schema SchemaSource
	gen    Generator

	group singleflight.Group
	mu    sync.RWMutex
	cat   *Catalog
	epoch uint64
}

// NewCache creates a Cache over a schema source and a generator.
func NewCache(schema SchemaSource, gen Generator) *Cache {
	return &Cache{schema: schema, gen: gen}
}

// GetOrBuild returns the cached catalog, building it first when absent.
// Build failures are not cached; the next call retries.
func (c *Cache) GetOrBuild(ctx context.Context) (*Catalog, error) {
	c.mu.RLock()
	cat, epoch := c.cat, c.epoch
	c.mu.RUnlock()
	if cat != nil {
		return cat, nil
	}

	v, err, _ := c.group.Do(strconv.FormatUint(epoch, 10), func() (any, error) {
		c.mu.RLock()
		cached := c.cat
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		text, err := c.schema.SchemaText(ctx)
		if err != nil {
			return nil, err
		}
		cases, err := c.gen.GenerateUseCases(ctx, text)
		if err != nil {
			return nil, err
		}
		built := New(cases)
		logging.Debugf("catalog", "built catalog with %d use cases", built.Len())

		// Store only if no invalidation happened while building, so a
		// profile swap is never masked by an in-flight stale build.
		c.mu.Lock()
		if c.epoch == epoch {
			c.cat = built
		}
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Invalidate drops the cached catalog. The next GetOrBuild regenerates.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cat = nil
	c.epoch++
	c.mu.Unlock()
	logging.Debugf("catalog", "cache invalidated")
}
