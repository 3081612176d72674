package models

// StudentCourseCount is one row of the multiple-courses report
type StudentCourseCount struct {
	StudentID   int64  `json:"studentId"`
	StudentName string `json:"studentName"`
	CourseCount int    `json:"courseCount"`
}

// DepartmentStudentCount is one row of the per-department head count, ordered by department id
type DepartmentStudentCount struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	StudentCount   int    `json:"studentCount"`
}
