package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/db"
)

const studentIDSequence = "student_id_seq"

// NextStudentID advances the student id counter. PostgreSQL uses a real sequence;
// SQLite keeps the counter as a row of the sequences table.
func (r *SQLRepository) NextStudentID(ctx context.Context) (int64, error) {
	var builder squirrel.Sqlizer
	if r.db.Dialect == db.Postgres {
		builder = r.sb.Select().Column(squirrel.Expr("nextval(?)", studentIDSequence))
	} else {
		builder = r.sb.Update("sequences").
			Set("value", squirrel.Expr("value + 1")).
			Where(squirrel.Eq{"name": studentIDSequence}).
			Suffix("RETURNING value")
	}

	row, err := r.queryRow(ctx, builder)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("error advancing %s: %w", studentIDSequence, err)
	}
	return id, nil
}

// InsertStudent creates a new student under student.ID
func (r *SQLRepository) InsertStudent(ctx context.Context, student *models.Student) error {
	err := r.exec(ctx, r.sb.Insert("students").
		Columns("id", "name", "department_id").
		Values(student.ID, student.Name, student.DepartmentID))

	return insertError(err, models.EntityStudent, student.ID, models.EntityDepartment, student.DepartmentID)
}

// GetStudent retrieves a student by ID
func (r *SQLRepository) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	row, err := r.queryRow(ctx, r.sb.Select("id", "name", "department_id").
		From("students").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	var student models.Student
	if err := row.Scan(&student.ID, &student.Name, &student.DepartmentID); err != nil {
		return nil, lookupError(err, models.EntityStudent, id)
	}

	return &student, nil
}
