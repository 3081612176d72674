// Package memory provides a map-backed records repository used for tests and
// ephemeral environments. It enforces the same key and pair uniqueness as the
// SQL schema; foreign keys are left to the records service.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// Compile-time contract assertion
var _ services.RecordsRepository = (*Repository)(nil)

type pairKey struct {
	studentID int64
	courseID  int64
}

// Repository holds every entity collection behind a single RWMutex
type Repository struct {
	mu sync.RWMutex

	departments map[int64]models.Department
	faculty     map[int64]models.Faculty
	students    map[int64]models.Student
	courses     map[int64]models.Course
	enrollments map[int64]models.Enrollment
	exams       map[int64]models.Exam

	pairs        map[pairKey]int64
	studentIDSeq int64
}

// NewRepository creates an empty repository
func NewRepository() *Repository {
	return &Repository{
		departments: make(map[int64]models.Department),
		faculty:     make(map[int64]models.Faculty),
		students:    make(map[int64]models.Student),
		courses:     make(map[int64]models.Course),
		enrollments: make(map[int64]models.Enrollment),
		exams:       make(map[int64]models.Exam),
		pairs:       make(map[pairKey]int64),
	}
}

func (r *Repository) InsertDepartment(_ context.Context, department *models.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.departments[department.ID]; ok {
		return apperrors.NewDuplicateKeyError(models.EntityDepartment, department.ID)
	}
	r.departments[department.ID] = *department
	return nil
}

func (r *Repository) GetDepartment(_ context.Context, id int64) (*models.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	department, ok := r.departments[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(models.EntityDepartment, id)
	}
	return &department, nil
}

func (r *Repository) ListDepartments(_ context.Context, offset uint64, limit int) ([]*models.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := sortedKeys(r.departments)
	if offset >= uint64(len(ids)) {
		return []*models.Department{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	out := make([]*models.Department, 0, len(ids))
	for _, id := range ids {
		department := r.departments[id]
		out = append(out, &department)
	}
	return out, nil
}

func (r *Repository) CountDepartments(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.departments)), nil
}

func (r *Repository) InsertFaculty(_ context.Context, faculty *models.Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculty[faculty.ID]; ok {
		return apperrors.NewDuplicateKeyError(models.EntityFaculty, faculty.ID)
	}
	stored := *faculty
	if faculty.DepartmentID != nil {
		departmentID := *faculty.DepartmentID
		stored.DepartmentID = &departmentID
	}
	r.faculty[faculty.ID] = stored
	return nil
}

func (r *Repository) GetFaculty(_ context.Context, id int64) (*models.Faculty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	faculty, ok := r.faculty[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(models.EntityFaculty, id)
	}
	if faculty.DepartmentID != nil {
		departmentID := *faculty.DepartmentID
		faculty.DepartmentID = &departmentID
	}
	return &faculty, nil
}

func (r *Repository) NextStudentID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.studentIDSeq++
	return r.studentIDSeq, nil
}

func (r *Repository) InsertStudent(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; ok {
		return apperrors.NewDuplicateKeyError(models.EntityStudent, student.ID)
	}
	r.students[student.ID] = *student
	return nil
}

func (r *Repository) GetStudent(_ context.Context, id int64) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(models.EntityStudent, id)
	}
	return &student, nil
}

func (r *Repository) InsertCourse(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; ok {
		return apperrors.NewDuplicateKeyError(models.EntityCourse, course.ID)
	}
	r.courses[course.ID] = *course
	return nil
}

func (r *Repository) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(models.EntityCourse, id)
	}
	return &course, nil
}

func (r *Repository) EnrollmentExists(_ context.Context, studentID, courseID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pairs[pairKey{studentID: studentID, courseID: courseID}]
	return ok, nil
}

// InsertEnrollment checks both the id and the pair under the write lock, so it is an
// atomic insert-if-absent even without the service's pair lock.
func (r *Repository) InsertEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enrollments[enrollment.ID]; ok {
		return apperrors.NewDuplicateKeyError(models.EntityEnrollment, enrollment.ID)
	}
	key := pairKey{studentID: enrollment.StudentID, courseID: enrollment.CourseID}
	if _, ok := r.pairs[key]; ok {
		return apperrors.NewDuplicateEnrollmentError(enrollment.StudentID, enrollment.CourseID)
	}
	r.enrollments[enrollment.ID] = *enrollment
	r.pairs[key] = enrollment.ID
	return nil
}

func (r *Repository) InsertExam(_ context.Context, exam *models.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exams[exam.ID]; ok {
		return apperrors.NewDuplicateKeyError(models.EntityExam, exam.ID)
	}
	r.exams[exam.ID] = *exam
	return nil
}

func (r *Repository) SumMaxMarksForStudent(_ context.Context, studentID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enrolled := make(map[int64]int)
	for key := range r.pairs {
		if key.studentID == studentID {
			enrolled[key.courseID]++
		}
	}

	var total int64
	for _, exam := range r.exams {
		total += int64(exam.MaxMarks) * int64(enrolled[exam.CourseID])
	}
	return total, nil
}

func (r *Repository) CountStudentsByDepartment(_ context.Context) ([]models.DepartmentStudentCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perDepartment := make(map[int64]int, len(r.departments))
	for _, student := range r.students {
		perDepartment[student.DepartmentID]++
	}

	ids := sortedKeys(r.departments)
	out := make([]models.DepartmentStudentCount, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.DepartmentStudentCount{
			DepartmentID:   id,
			DepartmentName: r.departments[id].Name,
			StudentCount:   perDepartment[id],
		})
	}
	return out, nil
}

func (r *Repository) ListStudentsWithMultipleCourses(_ context.Context) ([]models.StudentCourseCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perStudent := make(map[int64]int)
	for key := range r.pairs {
		perStudent[key.studentID]++
	}

	out := []models.StudentCourseCount{}
	for _, id := range sortedKeys(r.students) {
		if perStudent[id] > 1 {
			out = append(out, models.StudentCourseCount{
				StudentID:   id,
				StudentName: r.students[id].Name,
				CourseCount: perStudent[id],
			})
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
