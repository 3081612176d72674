package models

// Faculty represents a member of teaching staff, optionally attached to a department
type Faculty struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	DepartmentID *int64 `json:"departmentId,omitempty" db:"department_id"` // Nullable
}
