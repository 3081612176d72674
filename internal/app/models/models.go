package models

import "time"

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

// Entity names used in error messages, logs and metric labels
const (
	EntityDepartment = "department"
	EntityFaculty    = "faculty"
	EntityStudent    = "student"
	EntityCourse     = "course"
	EntityEnrollment = "enrollment"
	EntityExam       = "exam"
)

// TruncateDate drops the clock part so dates compare equal across backends
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
