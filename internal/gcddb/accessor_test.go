package gcddb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	"github.com/lepinkainen/gcdtalker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureAccessor(t *testing.T, opts ...Option) (*Accessor, *[]string) {
	t.Helper()
	env := testutil.NewTestEnv(t)
	path := testutil.NewGCDFixture(t, env)

	var queries []string
	opts = append([]Option{WithTracer(func(query string, _ []any) {
		queries = append(queries, query)
	})}, opts...)
	return New(path, opts...), &queries
}

func TestCheckPath(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFile("dir/file.db", []byte("x"))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "empty", path: "", wantErr: true},
		{name: "blank", path: "   ", wantErr: true},
		{name: "missing", path: env.Path("missing.db"), wantErr: true},
		{name: "directory", path: env.Path("dir"), wantErr: true},
		{name: "file", path: env.Path("dir", "file.db"), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.path).CheckPath()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDo_MissingPathNeverConnects(t *testing.T) {
	called := false
	err := New("").Do(context.Background(), func(*Session) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.False(t, called)
}

func TestDo_CreatesArtifactsOnce(t *testing.T) {
	a, queries := newFixtureAccessor(t)
	ctx := context.Background()

	require.NoError(t, a.Do(ctx, func(*Session) error { return nil }))
	assert.True(t, a.HasFullText())
	assert.Contains(t, *queries, storyIndexDDL)
	assert.Contains(t, *queries, ftsTableDDL)
	assert.Contains(t, *queries, ftsRebuild)

	*queries = nil
	require.NoError(t, a.Do(ctx, func(*Session) error { return nil }))
	assert.Empty(t, *queries, "artifacts are only checked on first use")

	// A new accessor over the same file finds the artifacts and leaves them alone.
	var again []string
	b := New(a.Path(), WithTracer(func(q string, _ []any) { again = append(again, q) }))
	require.NoError(t, b.Do(ctx, func(*Session) error { return nil }))
	assert.NotContains(t, again, storyIndexDDL)
	assert.NotContains(t, again, ftsTableDDL)
	assert.True(t, b.HasFullText())

	db, err := sql.Open("sqlite", a.Path())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name IN (?, ?)", storyIndexName, ftsTableName).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestDo_FullTextDisabled(t *testing.T) {
	a, queries := newFixtureAccessor(t, WithFullText(false))

	require.NoError(t, a.Do(context.Background(), func(*Session) error { return nil }))
	assert.False(t, a.HasFullText())
	assert.NotContains(t, *queries, ftsTableDDL)
	assert.Contains(t, *queries, storyIndexDDL)
}

func TestFTSRebuildIndexesExistingRows(t *testing.T) {
	a, _ := newFixtureAccessor(t)
	ctx := context.Background()

	var ids []int
	err := a.Do(ctx, func(s *Session) error {
		return s.Query(ctx, "SELECT rowid FROM fts WHERE fts MATCH ? ORDER BY rowid", []any{`"fantastic" "four"`}, func(row Scanner) error {
			var id int
			if err := row.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []int{testutil.SeriesFantasticFour, testutil.SeriesFantasticLower}, ids)
}

func TestQueryAllAndQueryOne(t *testing.T) {
	a, _ := newFixtureAccessor(t)
	ctx := context.Background()

	scanName := func(row Scanner) (string, error) {
		var name string
		err := row.Scan(&name)
		return name, err
	}

	err := a.Do(ctx, func(s *Session) error {
		names, err := QueryAll(ctx, s, sq.Select("name").From("gcd_publisher").OrderBy("id"), scanName)
		require.NoError(t, err)
		assert.Equal(t, []string{"Marvel", "DC", "Fantagraphics"}, names)

		name, found, err := QueryOne(ctx, s, sq.Select("name").From("gcd_publisher").Where(sq.Eq{"id": 2}), scanName)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "DC", name)

		_, found, err = QueryOne(ctx, s, sq.Select("name").From("gcd_publisher").Where(sq.Eq{"id": 99}), scanName)
		require.NoError(t, err)
		assert.False(t, found)
		return nil
	})
	require.NoError(t, err)
}

func TestErrorClassification(t *testing.T) {
	a, _ := newFixtureAccessor(t)
	ctx := context.Background()

	t.Run("constraint violation is a data error", func(t *testing.T) {
		err := a.Do(ctx, func(s *Session) error {
			return s.Exec(ctx, "INSERT INTO gcd_publisher (id, name) VALUES (1, 'Duplicate')")
		})
		require.Error(t, err)
		assert.True(t, errors.IsDataError(err), "got %v", err)
	})

	t.Run("unknown table is a connection error", func(t *testing.T) {
		err := a.Do(ctx, func(s *Session) error {
			return s.Query(ctx, "SELECT * FROM no_such_table", nil, func(Scanner) error { return nil })
		})
		require.Error(t, err)
		assert.True(t, errors.IsConnectionError(err), "got %v", err)
	})

	t.Run("classified errors pass through", func(t *testing.T) {
		orig := errors.NewDataError(Source, fmt.Errorf("bad id"))
		assert.Same(t, orig, classify(orig))
		assert.Nil(t, classify(nil))
	})

	t.Run("generic errors become connection errors", func(t *testing.T) {
		assert.True(t, errors.IsConnectionError(classify(fmt.Errorf("boom"))))
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("working snapshot", func(t *testing.T) {
		a, _ := newFixtureAccessor(t)
		msg, ok := a.Status(ctx)
		assert.True(t, ok)
		assert.Equal(t, "DB access test successful", msg)
	})

	t.Run("missing file", func(t *testing.T) {
		msg, ok := New("/nonexistent/gcd.db").Status(ctx)
		assert.False(t, ok)
		assert.Equal(t, "DB path does not exist", msg)
	})

	t.Run("not a gcd snapshot", func(t *testing.T) {
		env := testutil.NewTestEnv(t)
		env.WriteFile("garbage.db", []byte("definitely not sqlite"))
		msg, ok := New(env.Path("garbage.db")).Status(ctx)
		assert.False(t, ok)
		assert.Equal(t, "DB access failed", msg)
	})
}
