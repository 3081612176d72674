package repositories

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// InsertFaculty creates a new faculty member; a nil department is stored as NULL
func (r *SQLRepository) InsertFaculty(ctx context.Context, faculty *models.Faculty) error {
	departmentID := helpers.NullInt64FromPtr(faculty.DepartmentID)

	err := r.exec(ctx, r.sb.Insert("faculty").
		Columns("id", "name", "department_id").
		Values(faculty.ID, faculty.Name, departmentID))

	return insertError(err, models.EntityFaculty, faculty.ID, models.EntityDepartment, departmentID.Int64)
}

// GetFaculty retrieves a faculty member by ID
func (r *SQLRepository) GetFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	row, err := r.queryRow(ctx, r.sb.Select("id", "name", "department_id").
		From("faculty").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	var (
		faculty      models.Faculty
		departmentID sql.NullInt64
	)
	if err := row.Scan(&faculty.ID, &faculty.Name, &departmentID); err != nil {
		return nil, lookupError(err, models.EntityFaculty, id)
	}

	faculty.DepartmentID = helpers.Int64PtrFromNull(departmentID)

	return &faculty, nil
}
