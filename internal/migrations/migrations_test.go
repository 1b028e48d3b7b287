package migrations_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/healthmesh/internal/migrations"
)

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	names, err := migrations.Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	applied, err := migrations.Apply(t.Context(), db)
	require.NoError(t, err)
	require.Equal(t, names, applied)

	applied, err = migrations.Apply(t.Context(), db)
	require.NoError(t, err)
	require.Empty(t, applied)

	var count int
	require.NoError(t, db.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM migrations_history").Scan(&count))
	require.Equal(t, len(names), count)

	_, err = db.ExecContext(t.Context(), "INSERT INTO credentials (id, token) VALUES (1, 'x')")
	require.NoError(t, err)
}
