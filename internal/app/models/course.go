package models

// Course represents a course offered by a department.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
}
