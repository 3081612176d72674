package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/dberrors"
)

// EnrollmentExists checks if the student is already enrolled in the course
func (r *SQLRepository) EnrollmentExists(ctx context.Context, studentID, courseID int64) (bool, error) {
	row, err := r.queryRow(ctx, r.sb.Select("COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}))
	if err != nil {
		return false, err
	}

	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return count > 0, nil
}

// InsertEnrollment creates a new enrollment. The UNIQUE (student_id, course_id) constraint
// backs up the service's pair lock across processes sharing one database.
func (r *SQLRepository) InsertEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.exec(ctx, r.sb.Insert("enrollments").
		Columns("id", "student_id", "course_id", "enrollment_date").
		Values(enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.Date.Format(models.DateLayout)))

	switch {
	case err == nil:
		return nil
	case dberrors.IsPrimaryKeyViolation(err):
		return apperrors.NewDuplicateKeyError(models.EntityEnrollment, enrollment.ID)
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewDuplicateEnrollmentError(enrollment.StudentID, enrollment.CourseID)
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewCustomError(apperrors.ErrUnknownReference,
			fmt.Sprintf("student %d or course %d does not exist", enrollment.StudentID, enrollment.CourseID)).
			WithCode(apperrors.KindUnknownReference)
	default:
		return fmt.Errorf("error inserting enrollment: %w", err)
	}
}
