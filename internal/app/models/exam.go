package models

import "time"

// Exam is an assessment held for a course
type Exam struct {
	ID       int64     `json:"id" db:"id"`
	CourseID int64     `json:"courseId" db:"course_id"`
	Date     time.Time `json:"date" db:"exam_date"`
	MaxMarks int       `json:"maxMarks" db:"max_marks"`
}
