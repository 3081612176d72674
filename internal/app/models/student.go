package models

// Student defines the student model based on the 'students' table.
// Name is always stored upper-cased.
type Student struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Name         string `json:"name" db:"name" example:"ALICE"`
	DepartmentID int64  `json:"departmentId" db:"department_id" example:"1"`
}
