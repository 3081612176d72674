package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/models"
)

// InsertCourse creates a new course
func (r *SQLRepository) InsertCourse(ctx context.Context, course *models.Course) error {
	err := r.exec(ctx, r.sb.Insert("courses").
		Columns("id", "name", "department_id").
		Values(course.ID, course.Name, course.DepartmentID))

	return insertError(err, models.EntityCourse, course.ID, models.EntityDepartment, course.DepartmentID)
}

// GetCourse retrieves a course by ID
func (r *SQLRepository) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	row, err := r.queryRow(ctx, r.sb.Select("id", "name", "department_id").
		From("courses").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	var course models.Course
	if err := row.Scan(&course.ID, &course.Name, &course.DepartmentID); err != nil {
		return nil, lookupError(err, models.EntityCourse, id)
	}

	return &course, nil
}
