package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/db"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationFiles embed.FS

// Migrator applies the embedded schema migrations for one dialect
type Migrator struct {
	db     *db.DB
	sb     squirrel.StatementBuilderType
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(database *db.DB, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:     database,
		sb:     database.Builder(),
		logger: lgr.With().Str("component", "migrator").Logger(),
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := m.db.SQL.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.sb.Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var count int
	if err := m.db.SQL.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// recordMigration marks a migration as applied inside the migration's transaction
func (m *Migrator) recordMigration(ctx context.Context, tx *sql.Tx, version string) error {
	query, args, err := m.sb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// Files lists the migration files for the migrator's dialect in the order they are applied
func (m *Migrator) Files() ([]string, error) {
	dir := string(m.db.Dialect)
	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	// Version prefixes are zero padded, so lexical order is apply order
	sort.Strings(files)
	return files, nil
}

// Migrate applies every pending migration and returns how many were applied
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return 0, err
	}

	files, err := m.Files()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, file := range files {
		ok, err := m.migrateFile(ctx, file)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

// migrateFile applies one embedded file, e.g. "sqlite/001_init.sql" is recorded as version "001"
func (m *Migrator) migrateFile(ctx context.Context, file string) (bool, error) {
	filename := path.Base(file)
	version := strings.SplitN(filename, "_", 2)[0]

	alreadyApplied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return false, err
	}
	if alreadyApplied {
		m.logger.Debug().Str("file", filename).Msg("Migration already applied, skipping")
		return false, nil
	}

	content, err := migrationFiles.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("error occurred during SQL migration %s: %w", filename, err)
			}
		}
		return m.recordMigration(ctx, tx, version)
	})
	if err != nil {
		return false, err
	}

	m.logger.Info().Str("file", filename).Str("dialect", string(m.db.Dialect)).Msg("Migration applied")
	return true, nil
}

// SplitStatements drops "--" comment lines and splits the remainder on semicolons
func SplitStatements(content string) []string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
