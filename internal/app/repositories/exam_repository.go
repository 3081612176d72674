package repositories

import (
	"context"

	"github.com/yigit/unirecords/internal/app/models"
)

// InsertExam creates a new exam; dates are stored as YYYY-MM-DD
func (r *SQLRepository) InsertExam(ctx context.Context, exam *models.Exam) error {
	err := r.exec(ctx, r.sb.Insert("exams").
		Columns("id", "course_id", "exam_date", "max_marks").
		Values(exam.ID, exam.CourseID, exam.Date.Format(models.DateLayout), exam.MaxMarks))

	return insertError(err, models.EntityExam, exam.ID, models.EntityCourse, exam.CourseID)
}
