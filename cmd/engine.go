// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"os"
	"strings"

	"querysmith/cli/internal/backend"
	"querysmith/cli/internal/catalog"
	"querysmith/cli/internal/config"
	"querysmith/cli/internal/dbconn"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/introspect"
	"querysmith/cli/internal/secure"
	"querysmith/cli/internal/sqlexec"
)

// resolveDSN finds the active connection string: QUERYSMITH_DSN, then
// DATABASE_URL, then the OS keychain. The returned source names where the
// DSN came from, for commands that surface it.
func resolveDSN() (dsn, source string, err error) {
	if env := os.Getenv("QUERYSMITH_DSN"); strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env), "QUERYSMITH_DSN environment variable", nil
	}
	if env := os.Getenv("DATABASE_URL"); strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env), "DATABASE_URL environment variable", nil
	}
	if v, err := secure.LoadDBDSN(); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), "OS keychain", nil
	}
	return "", "", errors.New(errors.NotFound, "no database connection configured; run 'querysmith connect'")
}

// resolveAPIKey finds the generation-service API key. An empty key is
// allowed; the request then carries no Authorization header.
func resolveAPIKey() string {
	if env := os.Getenv("QUERYSMITH_API_KEY"); strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env)
	}
	if v, err := secure.LoadAPIKey(); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

// resolveGenURL finds the generation-service base URL.
func resolveGenURL() string {
	if env := os.Getenv("QUERYSMITH_GEN_URL"); strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env)
	}
	if cfg, err := config.Load(); err == nil && strings.TrimSpace(cfg.GenServiceURL) != "" {
		return cfg.GenServiceURL
	}
	return config.DefaultGenServiceURL
}

// engine bundles the connected pieces a database-facing command needs.
type engine struct {
	manager  *dbconn.Manager
	intro    *introspect.Introspector
	cache    *catalog.Cache
	executor *sqlexec.Executor
}

// newEngine resolves the DSN, opens the connection profile, and wires the
// introspector, catalog cache, and executor around it. The catalog is
// invalidated whenever the profile changes.
func newEngine(ctx context.Context) (*engine, error) {
	rawDSN, _, err := resolveDSN()
	if err != nil {
		return nil, err
	}

	manager, err := dbconn.Open(ctx, rawDSN)
	if err != nil {
		return nil, err
	}

	intro := introspect.NewIntrospector(manager)
	gen := backend.NewGenerator(resolveGenURL(), resolveAPIKey())
	cache := catalog.NewCache(intro, gen)
	manager.OnProfileChange(cache.Invalidate)

	return &engine{
		manager:  manager,
		intro:    intro,
		cache:    cache,
		executor: sqlexec.New(manager, intro),
	}, nil
}

// Close releases the engine's connection pool.
func (e *engine) Close() { _ = e.manager.Close() }
