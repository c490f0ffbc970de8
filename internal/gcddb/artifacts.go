package gcddb

import (
	"context"
	"log/slog"
	"strings"
)

const (
	storyIndexName = "issue_id_on_type_id"
	storyIndexDDL  = "CREATE INDEX issue_id_on_type_id ON gcd_story (type_id, issue_id)"
	ftsTableName   = "fts"
	ftsTableDDL    = "CREATE VIRTUAL TABLE fts USING fts5(name, content='gcd_series', content_rowid='id', tokenize = 'porter unicode61 remove_diacritics 1')"
	ftsRebuild     = "INSERT INTO fts(fts) VALUES('rebuild')"
)

// ensureArtifacts creates the story index and FTS table once per accessor.
// Both are checked in sqlite_master first so existing snapshots are untouched.
func (a *Accessor) ensureArtifacts(ctx context.Context, s *Session) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.indexReady {
		exists, err := s.objectExists(ctx, "index", storyIndexName)
		if err != nil {
			return err
		}
		if !exists {
			slog.Info("Creating story index", "name", storyIndexName)
			if err := s.Exec(ctx, storyIndexDDL); err != nil {
				return err
			}
		}
		a.indexReady = true
	}

	if !a.ftsChecked && a.fullText {
		hasFTS, err := s.ensureFTS(ctx)
		if err != nil {
			return err
		}
		a.hasFTS = hasFTS
		a.ftsChecked = true
	}

	return nil
}

func (s *Session) objectExists(ctx context.Context, kind, name string) (bool, error) {
	var found bool
	err := s.Query(ctx, "SELECT name FROM sqlite_master WHERE type=? AND name=?", []any{kind, name}, func(Scanner) error {
		found = true
		return nil
	})
	return found, err
}

func (s *Session) compiledWithFTS5(ctx context.Context) (bool, error) {
	var found bool
	err := s.Query(ctx, "pragma compile_options", nil, func(row Scanner) error {
		var opt string
		if err := row.Scan(&opt); err != nil {
			return err
		}
		if opt == "ENABLE_FTS5" {
			found = true
		}
		return nil
	})
	return found, err
}

func (s *Session) ensureFTS(ctx context.Context) (bool, error) {
	exists, err := s.objectExists(ctx, "table", ftsTableName)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	supported, err := s.compiledWithFTS5(ctx)
	if err != nil {
		return false, err
	}
	if !supported {
		slog.Info("SQLite has no FTS5 support, falling back to LIKE search")
		return false, nil
	}

	slog.Info("Creating series full-text table")
	if err := s.Exec(ctx, ftsTableDDL); err != nil {
		if strings.Contains(err.Error(), "no such module") {
			slog.Info("SQLite has no FTS5 support, falling back to LIKE search")
			return false, nil
		}
		return false, err
	}
	if err := s.Exec(ctx, ftsRebuild); err != nil {
		return false, err
	}
	return true, nil
}
