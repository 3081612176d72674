package dto

import (
	"time"

	"github.com/yigit/unirecords/internal/app/models"
)

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	ID   int64  `json:"id" binding:"required,gt=0" example:"1"`
	Name string `json:"name" binding:"required,max=100" example:"Computer Science"`
}

// CreateFacultyRequest represents faculty creation data; departmentId is optional
type CreateFacultyRequest struct {
	ID           int64  `json:"id" binding:"required,gt=0" example:"7"`
	Name         string `json:"name" binding:"required,max=100" example:"Dr. Ada Lovelace"`
	DepartmentID *int64 `json:"departmentId,omitempty" binding:"omitempty,gt=0" example:"1"`
}

// CreateStudentRequest represents student creation data. When ID is set the student is
// stored under that id instead of the next counter value.
type CreateStudentRequest struct {
	ID           *int64 `json:"id,omitempty" binding:"omitempty,gt=0" example:"42"`
	Name         string `json:"name" binding:"required,max=100" example:"Alice"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0" example:"1"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	ID           int64  `json:"id" binding:"required,gt=0" example:"101"`
	Name         string `json:"name" binding:"required,max=100" example:"Algorithms"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0" example:"1"`
}

// CreateEnrollmentRequest represents enrollment creation data
type CreateEnrollmentRequest struct {
	ID        int64  `json:"id" binding:"required,gt=0" example:"1"`
	StudentID int64  `json:"studentId" binding:"required,gt=0" example:"1"`
	CourseID  int64  `json:"courseId" binding:"required,gt=0" example:"101"`
	Date      string `json:"enrollmentDate" binding:"required,datetime=2006-01-02" example:"2024-09-01"`
}

// CreateExamRequest represents exam creation data. maxMarks is validated by the service so
// zero and negative values report the same error as every other caller sees.
type CreateExamRequest struct {
	ID       int64  `json:"id" binding:"required,gt=0" example:"1"`
	CourseID int64  `json:"courseId" binding:"required,gt=0" example:"101"`
	Date     string `json:"examDate" binding:"required,datetime=2006-01-02" example:"2025-01-15"`
	MaxMarks int    `json:"maxMarks" example:"100"`
}

// EnrollmentResponse represents an enrollment with its date as YYYY-MM-DD
type EnrollmentResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	CourseID  int64  `json:"courseId"`
	Date      string `json:"enrollmentDate"`
}

// ExamResponse represents an exam with its date as YYYY-MM-DD
type ExamResponse struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"courseId"`
	Date     string `json:"examDate"`
	MaxMarks int    `json:"maxMarks"`
}

// DepartmentNameResponse carries a single department name
type DepartmentNameResponse struct {
	DepartmentID int64  `json:"departmentId"`
	Name         string `json:"name"`
}

// TotalMarksResponse carries the total maximum marks of a student
type TotalMarksResponse struct {
	StudentID  int64 `json:"studentId"`
	TotalMarks int64 `json:"totalMarks"`
}

// DepartmentListResponse represents a page of departments
type DepartmentListResponse struct {
	Departments []*models.Department `json:"departments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// FromEnrollment converts a models.Enrollment to an EnrollmentResponse
func FromEnrollment(enrollment *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:        enrollment.ID,
		StudentID: enrollment.StudentID,
		CourseID:  enrollment.CourseID,
		Date:      enrollment.Date.Format(models.DateLayout),
	}
}

// FromExam converts a models.Exam to an ExamResponse
func FromExam(exam *models.Exam) ExamResponse {
	return ExamResponse{
		ID:       exam.ID,
		CourseID: exam.CourseID,
		Date:     exam.Date.Format(models.DateLayout),
		MaxMarks: exam.MaxMarks,
	}
}

// ParseDate parses a YYYY-MM-DD request date as UTC midnight
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, value, time.UTC)
}
