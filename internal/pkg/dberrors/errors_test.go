package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresClassification(t *testing.T) {
	pkErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_pkey"}
	pairErr := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_student_course_key"}
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "courses_department_id_fkey"}

	assert.True(t, IsUniqueViolation(pkErr))
	assert.True(t, IsPrimaryKeyViolation(pkErr))

	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pairErr)))
	assert.False(t, IsPrimaryKeyViolation(pairErr))

	assert.True(t, IsForeignKeyViolation(fkErr))
	assert.False(t, IsUniqueViolation(fkErr))
}

func TestUnrelatedErrors(t *testing.T) {
	err := errors.New("connection reset")

	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsPrimaryKeyViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(nil))
}
