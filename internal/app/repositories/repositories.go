package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/db"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/dberrors"
)

// Compile-time contract assertion
var _ services.RecordsRepository = (*SQLRepository)(nil)

// SQLRepository stores records in PostgreSQL or SQLite through database/sql.
// Queries are built with squirrel so the same code serves both dialects.
type SQLRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewSQLRepository creates a repository over an open, migrated database
func NewSQLRepository(database *db.DB) *SQLRepository {
	return &SQLRepository{
		db: database,
		sb: database.Builder(),
	}
}

// exec runs a built statement
func (r *SQLRepository) exec(ctx context.Context, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	_, err = r.db.SQL.ExecContext(ctx, query, args...)
	return err
}

// queryRow runs a built query expected to return a single row
func (r *SQLRepository) queryRow(ctx context.Context, builder squirrel.Sqlizer) (*sql.Row, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.db.SQL.QueryRowContext(ctx, query, args...), nil
}

// query runs a built query returning rows; callers close them
func (r *SQLRepository) query(ctx context.Context, builder squirrel.Sqlizer) (*sql.Rows, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.db.SQL.QueryContext(ctx, query, args...)
}

// insertError maps driver constraint errors of a single-row insert to apperrors kinds.
// ref names the entity a foreign key violation points at.
func insertError(err error, entity string, id int64, ref string, refID int64) error {
	switch {
	case err == nil:
		return nil
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewDuplicateKeyError(entity, id)
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewUnknownReferenceError(ref, refID)
	default:
		return fmt.Errorf("error inserting %s: %w", entity, err)
	}
}

// lookupError maps sql.ErrNoRows to ErrNotFound
func lookupError(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(entity, id)
	}
	return fmt.Errorf("error retrieving %s: %w", entity, err)
}
