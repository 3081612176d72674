package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/models"
)

// InsertDepartment creates a new department
func (r *SQLRepository) InsertDepartment(ctx context.Context, department *models.Department) error {
	err := r.exec(ctx, r.sb.Insert("departments").
		Columns("id", "name").
		Values(department.ID, department.Name))

	return insertError(err, models.EntityDepartment, department.ID, "", 0)
}

// GetDepartment retrieves a department by ID
func (r *SQLRepository) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	row, err := r.queryRow(ctx, r.sb.Select("id", "name").
		From("departments").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	var department models.Department
	if err := row.Scan(&department.ID, &department.Name); err != nil {
		return nil, lookupError(err, models.EntityDepartment, id)
	}

	return &department, nil
}

// ListDepartments retrieves one page of departments ordered by id; limit <= 0 means no limit
func (r *SQLRepository) ListDepartments(ctx context.Context, offset uint64, limit int) ([]*models.Department, error) {
	builder := r.sb.Select("id", "name").
		From("departments").
		OrderBy("id").
		Offset(offset)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	} else if offset > 0 {
		// SQLite rejects OFFSET without LIMIT
		builder = builder.Limit(1<<63 - 1)
	}

	rows, err := r.query(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// CountDepartments returns the total number of departments
func (r *SQLRepository) CountDepartments(ctx context.Context) (int64, error) {
	row, err := r.queryRow(ctx, r.sb.Select("COUNT(*)").From("departments"))
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting departments: %w", err)
	}
	return count, nil
}
