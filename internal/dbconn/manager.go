// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbconn

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"time"

	"querysmith/cli/internal/dsn"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/logging"
)

// pingTimeout bounds the connectivity check when a profile is opened.
const pingTimeout = 5 * time.Second

// Session is a scoped database session bound to the backend that was active
// when it was opened. Callers must Close it on every exit path.
type Session struct {
	conn    *sql.Conn
	backend Backend
}

// Conn returns the underlying connection.
func (s *Session) Conn() *sql.Conn { return s.conn }

// Backend returns the backend the session was opened against.
func (s *Session) Backend() Backend { return s.backend }

// Close releases the session back to the pool.
func (s *Session) Close() error { return s.conn.Close() }

// Manager owns the active connection profile and its pool. Profile swaps and
// session opens are mutually exclusive, so a session never observes a
// half-updated profile.
type Manager struct {
	mu      sync.RWMutex
	db      *sql.DB
	backend Backend
	info    *dsn.DSNInfo
	onSwap  []func()
}

// Open parses and validates rawDSN, opens a pool for its backend, and
// verifies connectivity with a bounded ping.
func Open(ctx context.Context, rawDSN string) (*Manager, error) {
	db, backend, info, err := open(ctx, rawDSN)
	if err != nil {
		return nil, err
	}
	logging.Debugf("dbconn", "opened %s pool for %s:%s/%s", backend.Kind(), info.Host, info.Port, info.Database)
	return &Manager{db: db, backend: backend, info: info}, nil
}

// OpenDB wraps an already-opened pool with the backend for kind. The
// manager takes ownership of the pool: Close closes it.
func OpenDB(kind dsn.DBType, db *sql.DB) (*Manager, error) {
	backend, err := backendFor(kind)
	if err != nil {
		return nil, err
	}
	return &Manager{db: db, backend: backend, info: &dsn.DSNInfo{Type: kind}}, nil
}

// open validates the DSN and backend kind before any network attempt, then
// dials and pings.
func open(ctx context.Context, rawDSN string) (*sql.DB, Backend, *dsn.DSNInfo, error) {
	info, err := dsn.ParseInfo(rawDSN)
	if err != nil {
		return nil, nil, nil, errors.Wrap(errors.Configuration, "invalid DSN", err)
	}
	if _, convErr := strconv.Atoi(info.Port); convErr != nil {
		return nil, nil, nil, errors.New(errors.Configuration, "port must be numeric, got "+info.Port)
	}
	backend, err := backendFor(info.Type)
	if err != nil {
		return nil, nil, nil, err
	}
	driverDSN, err := backend.DriverDSN(info)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := sql.Open(backend.DriverName(), driverDSN)
	if err != nil {
		return nil, nil, nil, errors.Wrap(errors.Configuration, "failed to open database pool", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, nil, errors.Wrap(errors.Connection, "database is unreachable", err)
	}
	return db, backend, info, nil
}

// OpenSession returns a scoped session on the active pool.
func (m *Manager) OpenSession(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.db == nil {
		return nil, errors.New(errors.Connection, "no active database connection")
	}
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.Connection, "failed to open database session", err)
	}
	return &Session{conn: conn, backend: m.backend}, nil
}

// UpdateProfile validates the new DSN, verifies connectivity, then
// atomically swaps the active profile. The old pool is closed and all
// registered invalidation hooks run after the swap.
func (m *Manager) UpdateProfile(ctx context.Context, rawDSN string) error {
	db, backend, info, err := open(ctx, rawDSN)
	if err != nil {
		return err
	}
	m.swap(db, backend, info)
	logging.Debugf("dbconn", "profile swapped to %s:%s/%s", info.Host, info.Port, info.Database)
	return nil
}

func (m *Manager) swap(db *sql.DB, backend Backend, info *dsn.DSNInfo) {
	m.mu.Lock()
	old := m.db
	m.db, m.backend, m.info = db, backend, info
	hooks := make([]func(), len(m.onSwap))
	copy(hooks, m.onSwap)
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	for _, fn := range hooks {
		fn()
	}
}

// OnProfileChange registers a hook invoked after every successful profile
// swap. Dependent caches register their invalidation here.
func (m *Manager) OnProfileChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSwap = append(m.onSwap, fn)
}

// Backend returns the active backend.
func (m *Manager) Backend() Backend {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.backend
}

// Info returns the active profile's parsed DSN info.
func (m *Manager) Info() *dsn.DSNInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}

// DB exposes the active pool for components that manage their own scoping.
func (m *Manager) DB() *sql.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// Close shuts down the active pool.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
