// Package gcddb provides per-operation access to a local Grand Comics Database
// SQLite snapshot, including the index and full-text artifacts the lookups rely on.
package gcddb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	_ "modernc.org/sqlite"
)

// Source names the data source in error messages.
const Source = "Grand Comics Database"

// Tracer receives every statement executed through a Session.
type Tracer func(query string, args []any)

// Accessor opens a fresh connection for each operation and lazily creates the
// story index and the series-name FTS table on first use.
type Accessor struct {
	path     string
	tracer   Tracer
	fullText bool

	mu         sync.Mutex
	indexReady bool
	ftsChecked bool
	hasFTS     bool
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithTracer installs a statement tracer. The default logs at debug level.
func WithTracer(t Tracer) Option {
	return func(a *Accessor) {
		if t != nil {
			a.tracer = t
		}
	}
}

// WithFullText enables or disables use of the FTS5 table. Disabling it
// makes searches fall back to LIKE matching.
func WithFullText(enabled bool) Option {
	return func(a *Accessor) {
		a.fullText = enabled
	}
}

// New creates an accessor for the snapshot at path. The path is validated
// lazily on every operation.
func New(path string, opts ...Option) *Accessor {
	a := &Accessor{
		path:     path,
		fullText: true,
		tracer: func(query string, args []any) {
			slog.Debug("SQL", "query", query, "args", args)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Path returns the configured database path.
func (a *Accessor) Path() string {
	return a.path
}

// CheckPath verifies that the configured path names an existing regular file.
func (a *Accessor) CheckPath() error {
	if strings.TrimSpace(a.path) == "" {
		return errors.NewConfigurationError("GCD database path is not set")
	}
	info, err := os.Stat(a.path)
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("GCD database %q does not exist", a.path))
	}
	if !info.Mode().IsRegular() {
		return errors.NewConfigurationError(fmt.Sprintf("GCD database %q is not a file", a.path))
	}
	return nil
}

// Session is a single open connection used by one public operation.
type Session struct {
	db *sql.DB
	a  *Accessor
}

// Do runs fn inside a new session. The connection is closed before Do returns.
// Performance artifacts are ensured before fn is called.
func (a *Accessor) Do(ctx context.Context, fn func(*Session) error) error {
	if err := a.CheckPath(); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", a.path)
	if err != nil {
		return classify(err)
	}
	db.SetMaxOpenConns(1)
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Debug("Failed to close GCD database", "error", cerr)
		}
	}()

	s := &Session{db: db, a: a}
	if err := a.ensureArtifacts(ctx, s); err != nil {
		return err
	}
	return fn(s)
}

// HasFullText reports whether searches may use the FTS table. It is only
// meaningful after the first session has run.
func (a *Accessor) HasFullText() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fullText && a.hasFTS
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Query executes a raw statement and scans every row with scan.
func (s *Session) Query(ctx context.Context, query string, args []any, scan func(Scanner) error) error {
	s.a.tracer(query, args)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return classify(err)
		}
	}
	if err := rows.Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Select builds b and scans every resulting row with scan.
func (s *Session) Select(ctx context.Context, b sq.Sqlizer, scan func(Scanner) error) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.NewDataError(Source, err)
	}
	return s.Query(ctx, query, args, scan)
}

// Exec executes a statement that returns no rows.
func (s *Session) Exec(ctx context.Context, query string, args ...any) error {
	s.a.tracer(query, args)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

// QueryAll builds b and maps every row with scan.
func QueryAll[T any](ctx context.Context, s *Session, b sq.Sqlizer, scan func(Scanner) (T, error)) ([]T, error) {
	var out []T
	err := s.Select(ctx, b, func(row Scanner) error {
		v, err := scan(row)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryOne builds b and maps the first row with scan. The bool result is
// false when no row matched.
func QueryOne[T any](ctx context.Context, s *Session, b sq.Sqlizer, scan func(Scanner) (T, error)) (T, bool, error) {
	var zero T
	rows, err := QueryAll(ctx, s, b, scan)
	if err != nil || len(rows) == 0 {
		return zero, false, err
	}
	return rows[0], true, nil
}
