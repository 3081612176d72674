package models

import "time"

// Enrollment links a student to a course. A (StudentID, CourseID) pair appears at most once.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Date      time.Time `json:"date" db:"enrollment_date"`
}
