package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/models"
)

// SumMaxMarksForStudent adds up max_marks of every exam in every course the student is enrolled in
func (r *SQLRepository) SumMaxMarksForStudent(ctx context.Context, studentID int64) (int64, error) {
	row, err := r.queryRow(ctx, r.sb.Select("COALESCE(SUM(x.max_marks), 0)").
		From("enrollments en").
		Join("exams x ON x.course_id = en.course_id").
		Where(squirrel.Eq{"en.student_id": studentID}))
	if err != nil {
		return 0, err
	}

	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing marks for student: %w", err)
	}
	return total, nil
}

// CountStudentsByDepartment returns one row per department, including departments without students
func (r *SQLRepository) CountStudentsByDepartment(ctx context.Context) ([]models.DepartmentStudentCount, error) {
	rows, err := r.query(ctx, r.sb.Select("d.id", "d.name", "COUNT(s.id)").
		From("departments d").
		LeftJoin("students s ON s.department_id = d.id").
		GroupBy("d.id", "d.name").
		OrderBy("d.id"))
	if err != nil {
		return nil, fmt.Errorf("error counting students by department: %w", err)
	}
	defer rows.Close()

	counts := []models.DepartmentStudentCount{}
	for rows.Next() {
		var row models.DepartmentStudentCount
		if err := rows.Scan(&row.DepartmentID, &row.DepartmentName, &row.StudentCount); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// ListStudentsWithMultipleCourses returns students enrolled in more than one course, ordered by id
func (r *SQLRepository) ListStudentsWithMultipleCourses(ctx context.Context) ([]models.StudentCourseCount, error) {
	rows, err := r.query(ctx, r.sb.Select("s.id", "s.name", "COUNT(en.course_id)").
		From("students s").
		Join("enrollments en ON en.student_id = s.id").
		GroupBy("s.id", "s.name").
		Having("COUNT(en.course_id) > ?", 1).
		OrderBy("s.id"))
	if err != nil {
		return nil, fmt.Errorf("error listing students with multiple courses: %w", err)
	}
	defer rows.Close()

	students := []models.StudentCourseCount{}
	for rows.Next() {
		var row models.StudentCourseCount
		if err := rows.Scan(&row.StudentID, &row.StudentName, &row.CourseCount); err != nil {
			return nil, err
		}
		students = append(students, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
