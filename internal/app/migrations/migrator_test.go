package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unirecords/internal/db"
)

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements(`
-- leading comment; with a semicolon
CREATE TABLE a (id INTEGER);

CREATE TABLE b (id INTEGER);
   `)

	assert.Equal(t, []string{"CREATE TABLE a (id INTEGER)", "CREATE TABLE b (id INTEGER)"}, stmts)
}

func TestMigrator_Files(t *testing.T) {
	for _, dialect := range []db.Dialect{db.Postgres, db.SQLite} {
		m := NewMigrator(&db.DB{Dialect: dialect}, zerolog.Nop())

		files, err := m.Files()
		require.NoError(t, err)
		require.NotEmpty(t, files)
		assert.Equal(t, string(dialect)+"/001_init.sql", files[0])
	}
}

func TestMigrator_SQLiteIsIdempotent(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer database.Close()

	m := NewMigrator(database, zerolog.Nop())
	ctx := context.Background()

	applied, err := m.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = m.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	for _, table := range []string{"departments", "faculty", "students", "courses", "enrollments", "exams", "sequences"} {
		var name string
		err := database.SQL.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var seq int64
	require.NoError(t, database.SQL.QueryRow(`SELECT value FROM sequences WHERE name = 'student_id_seq'`).Scan(&seq))
	assert.Zero(t, seq)
}
