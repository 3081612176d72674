package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/im7mortal/kmutex"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/metrics"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// RecordsRepository is the storage backend behind RecordsService.
//
// Insert methods must be atomic per row and report collisions with the apperrors kinds:
// ErrDuplicateKey for a primary key, ErrDuplicateEnrollment for a (student, course) pair and
// ErrUnknownReference for a foreign key the backend enforces itself. Get methods return
// ErrNotFound for a missing key.
type RecordsRepository interface {
	InsertDepartment(ctx context.Context, department *models.Department) error
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
	ListDepartments(ctx context.Context, offset uint64, limit int) ([]*models.Department, error)
	CountDepartments(ctx context.Context) (int64, error)

	InsertFaculty(ctx context.Context, faculty *models.Faculty) error
	GetFaculty(ctx context.Context, id int64) (*models.Faculty, error)

	// NextStudentID returns the next value of the student id counter (1, 2, 3, ...)
	NextStudentID(ctx context.Context) (int64, error)
	InsertStudent(ctx context.Context, student *models.Student) error
	GetStudent(ctx context.Context, id int64) (*models.Student, error)

	InsertCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id int64) (*models.Course, error)

	EnrollmentExists(ctx context.Context, studentID, courseID int64) (bool, error)
	InsertEnrollment(ctx context.Context, enrollment *models.Enrollment) error

	InsertExam(ctx context.Context, exam *models.Exam) error

	SumMaxMarksForStudent(ctx context.Context, studentID int64) (int64, error)
	CountStudentsByDepartment(ctx context.Context) ([]models.DepartmentStudentCount, error)
	ListStudentsWithMultipleCourses(ctx context.Context) ([]models.StudentCourseCount, error)
}

// enrollmentKey scopes the enrollment lock to a single (student, course) pair
type enrollmentKey struct {
	studentID int64
	courseID  int64
}

// RecordsService owns the university records and enforces their integrity rules
// before every mutation. It is safe for concurrent use.
type RecordsService struct {
	repo        RecordsRepository
	enrollLocks *kmutex.Kmutex
	metrics     *metrics.Collector
	logger      zerolog.Logger
}

// NewRecordsService creates a records service. collector may be nil.
func NewRecordsService(repo RecordsRepository, collector *metrics.Collector, lgr zerolog.Logger) *RecordsService {
	return &RecordsService{
		repo:        repo,
		enrollLocks: kmutex.New(),
		metrics:     collector,
		logger:      lgr.With().Str("component", "records").Logger(),
	}
}

// CreateDepartment creates a department with a caller-supplied id
func (s *RecordsService) CreateDepartment(ctx context.Context, id int64, name string) (*models.Department, error) {
	start := time.Now()
	department := &models.Department{ID: id, Name: name}

	err := s.createDepartment(ctx, department)
	if err = s.finish(models.EntityDepartment, "create_department", start, err); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *RecordsService) createDepartment(ctx context.Context, department *models.Department) error {
	if err := validateID("id", department.ID); err != nil {
		return err
	}
	if err := validateName("name", department.Name); err != nil {
		return err
	}
	return s.repo.InsertDepartment(ctx, department)
}

// CreateFaculty creates a faculty member; departmentID may be nil
func (s *RecordsService) CreateFaculty(ctx context.Context, id int64, name string, departmentID *int64) (*models.Faculty, error) {
	start := time.Now()
	faculty := &models.Faculty{ID: id, Name: name, DepartmentID: departmentID}

	err := s.createFaculty(ctx, faculty)
	if err = s.finish(models.EntityFaculty, "create_faculty", start, err); err != nil {
		return nil, err
	}
	return faculty, nil
}

func (s *RecordsService) createFaculty(ctx context.Context, faculty *models.Faculty) error {
	if err := validateID("id", faculty.ID); err != nil {
		return err
	}
	if err := validateName("name", faculty.Name); err != nil {
		return err
	}
	if faculty.DepartmentID != nil {
		if err := s.requireDepartment(ctx, *faculty.DepartmentID); err != nil {
			return err
		}
	}
	return s.repo.InsertFaculty(ctx, faculty)
}

// CreateStudent creates a student with the next id from the student counter.
// The name is stored upper-cased.
func (s *RecordsService) CreateStudent(ctx context.Context, name string, departmentID int64) (*models.Student, error) {
	start := time.Now()
	student := &models.Student{Name: name, DepartmentID: departmentID}

	err := s.createStudent(ctx, student, true)
	if err = s.finish(models.EntityStudent, "create_student", start, err); err != nil {
		return nil, err
	}
	return student, nil
}

// CreateStudentWithID inserts a student under an explicit id without touching the counter.
// A later auto-numbered insert may collide with it and fail with ErrDuplicateKey.
func (s *RecordsService) CreateStudentWithID(ctx context.Context, id int64, name string, departmentID int64) (*models.Student, error) {
	start := time.Now()
	student := &models.Student{ID: id, Name: name, DepartmentID: departmentID}

	err := s.createStudent(ctx, student, false)
	if err = s.finish(models.EntityStudent, "create_student_with_id", start, err); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *RecordsService) createStudent(ctx context.Context, student *models.Student, autoID bool) error {
	if !autoID {
		if err := validateID("id", student.ID); err != nil {
			return err
		}
	}
	if err := validateName("name", student.Name); err != nil {
		return err
	}
	if err := s.requireDepartment(ctx, student.DepartmentID); err != nil {
		return err
	}

	student.Name = normalizeStudentName(student.Name)

	if autoID {
		// Drawn after validation so rejected inserts do not burn counter values
		id, err := s.repo.NextStudentID(ctx)
		if err != nil {
			return fmt.Errorf("error allocating student id: %w", err)
		}
		student.ID = id
	}

	return s.repo.InsertStudent(ctx, student)
}

// normalizeStudentName applies the upper-case rule to student names
func normalizeStudentName(name string) string {
	return strings.ToUpper(name)
}

// CreateCourse creates a course owned by a department
func (s *RecordsService) CreateCourse(ctx context.Context, id int64, name string, departmentID int64) (*models.Course, error) {
	start := time.Now()
	course := &models.Course{ID: id, Name: name, DepartmentID: departmentID}

	err := s.createCourse(ctx, course)
	if err = s.finish(models.EntityCourse, "create_course", start, err); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *RecordsService) createCourse(ctx context.Context, course *models.Course) error {
	if err := validateID("id", course.ID); err != nil {
		return err
	}
	if err := validateName("name", course.Name); err != nil {
		return err
	}
	if err := s.requireDepartment(ctx, course.DepartmentID); err != nil {
		return err
	}
	return s.repo.InsertCourse(ctx, course)
}

// CreateEnrollment enrolls a student in a course. A student can be enrolled in a course at most once;
// the duplicate check and the insert run under a lock held for that (student, course) pair.
func (s *RecordsService) CreateEnrollment(ctx context.Context, id, studentID, courseID int64, date time.Time) (*models.Enrollment, error) {
	start := time.Now()
	enrollment := &models.Enrollment{ID: id, StudentID: studentID, CourseID: courseID, Date: models.TruncateDate(date)}

	err := s.createEnrollment(ctx, enrollment, date.IsZero())
	if err = s.finish(models.EntityEnrollment, "create_enrollment", start, err); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *RecordsService) createEnrollment(ctx context.Context, enrollment *models.Enrollment, missingDate bool) error {
	if err := validateID("id", enrollment.ID); err != nil {
		return err
	}
	if missingDate {
		return apperrors.NewInvalidArgumentError("date", "is required")
	}
	if err := s.requireStudent(ctx, enrollment.StudentID); err != nil {
		return err
	}
	if err := s.requireCourse(ctx, enrollment.CourseID); err != nil {
		return err
	}

	key := enrollmentKey{studentID: enrollment.StudentID, courseID: enrollment.CourseID}
	s.enrollLocks.Lock(key)
	defer s.enrollLocks.Unlock(key)

	exists, err := s.repo.EnrollmentExists(ctx, enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return fmt.Errorf("error checking enrollment: %w", err)
	}
	if exists {
		return apperrors.NewDuplicateEnrollmentError(enrollment.StudentID, enrollment.CourseID)
	}

	return s.repo.InsertEnrollment(ctx, enrollment)
}

// CreateExam schedules an exam for a course; maxMarks must be positive
func (s *RecordsService) CreateExam(ctx context.Context, id, courseID int64, date time.Time, maxMarks int) (*models.Exam, error) {
	start := time.Now()
	exam := &models.Exam{ID: id, CourseID: courseID, Date: models.TruncateDate(date), MaxMarks: maxMarks}

	err := s.createExam(ctx, exam, date.IsZero())
	if err = s.finish(models.EntityExam, "create_exam", start, err); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *RecordsService) createExam(ctx context.Context, exam *models.Exam, missingDate bool) error {
	if err := validateID("id", exam.ID); err != nil {
		return err
	}
	marks := validation.NewNumericValidation(int64(exam.MaxMarks)).WithMin(validation.MinMaxMarks)
	if !marks.Validate() {
		return apperrors.NewInvalidArgumentError("maxMarks", marks.Reason())
	}
	if missingDate {
		return apperrors.NewInvalidArgumentError("date", "is required")
	}
	if err := s.requireCourse(ctx, exam.CourseID); err != nil {
		return err
	}
	return s.repo.InsertExam(ctx, exam)
}

// TotalMarksForStudent sums maxMarks over the exams of every course the student is enrolled in.
// A student with no enrollments, or an unknown student id, yields 0 rather than an error.
func (s *RecordsService) TotalMarksForStudent(ctx context.Context, studentID int64) (int64, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDuration("total_marks_for_student", time.Since(start)) }()

	total, err := s.repo.SumMaxMarksForStudent(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("error summing marks: %w", err)
	}
	return total, nil
}

// DepartmentName returns the name of a department or ErrNotFound
func (s *RecordsService) DepartmentName(ctx context.Context, departmentID int64) (string, error) {
	department, err := s.GetDepartment(ctx, departmentID)
	if err != nil {
		return "", err
	}
	return department.Name, nil
}

// StudentCountByDepartment maps each department name to its number of students,
// including departments without students. Departments sharing a name share an entry.
func (s *RecordsService) StudentCountByDepartment(ctx context.Context) (map[string]int, error) {
	rows, err := s.repo.CountStudentsByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.DepartmentName] += row.StudentCount
	}
	return counts, nil
}

// StudentsWithMultipleCourses lists students enrolled in more than one course, ordered by student id
func (s *RecordsService) StudentsWithMultipleCourses(ctx context.Context) ([]models.StudentCourseCount, error) {
	rows, err := s.repo.ListStudentsWithMultipleCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students with multiple courses: %w", err)
	}
	if rows == nil {
		rows = []models.StudentCourseCount{}
	}
	return rows, nil
}

// GetDepartment retrieves a department by id
func (s *RecordsService) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.repo.GetDepartment(ctx, id)
	if err != nil {
		return nil, lookupError(err, "department")
	}
	return department, nil
}

// ListDepartments returns one page of departments ordered by id and the total count
func (s *RecordsService) ListDepartments(ctx context.Context, offset uint64, limit int) ([]*models.Department, int64, error) {
	total, err := s.repo.CountDepartments(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting departments: %w", err)
	}

	departments, err := s.repo.ListDepartments(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving departments: %w", err)
	}
	if departments == nil {
		departments = []*models.Department{}
	}
	return departments, total, nil
}

// GetFaculty retrieves a faculty member by id
func (s *RecordsService) GetFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.repo.GetFaculty(ctx, id)
	if err != nil {
		return nil, lookupError(err, "faculty")
	}
	return faculty, nil
}

// GetStudent retrieves a student by id
func (s *RecordsService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	return student, nil
}

// GetCourse retrieves a course by id
func (s *RecordsService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	return course, nil
}

func (s *RecordsService) requireDepartment(ctx context.Context, id int64) error {
	_, err := s.repo.GetDepartment(ctx, id)
	return referenceError(err, models.EntityDepartment, id)
}

func (s *RecordsService) requireStudent(ctx context.Context, id int64) error {
	_, err := s.repo.GetStudent(ctx, id)
	return referenceError(err, models.EntityStudent, id)
}

func (s *RecordsService) requireCourse(ctx context.Context, id int64) error {
	_, err := s.repo.GetCourse(ctx, id)
	return referenceError(err, models.EntityCourse, id)
}

// referenceError turns a failed lookup of a foreign key target into ErrUnknownReference
func referenceError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewUnknownReferenceError(entity, id)
	}
	return fmt.Errorf("error checking %s %d: %w", entity, id, err)
}

func lookupError(err error, entity string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return fmt.Errorf("error retrieving %s: %w", entity, err)
}

// finish records metrics and logs the outcome of a create operation
func (s *RecordsService) finish(entity, operation string, start time.Time, err error) error {
	s.metrics.ObserveDuration(operation, time.Since(start))

	if err == nil {
		s.metrics.RecordCreated(entity)
		return nil
	}

	kind := apperrors.Kind(err)
	s.metrics.RecordRejected(entity, kind)
	if kind == apperrors.KindInternal {
		s.logger.Error().Err(err).Str("operation", operation).Msg("Records backend failure")
	} else {
		s.logger.Debug().Err(err).Str("operation", operation).Str("kind", kind).Msg("Mutation rejected")
	}
	return err
}

func validateID(field string, id int64) error {
	v := validation.NewNumericValidation(id).WithMin(validation.MinID)
	if !v.Validate() {
		return apperrors.NewInvalidArgumentError(field, v.Reason())
	}
	return nil
}

func validateName(field, name string) error {
	v := validation.NewStringValidation(name).WithMaxLength(validation.NameMaxLength)
	if !v.Validate() {
		return apperrors.NewInvalidArgumentError(field, v.Reason())
	}
	return nil
}
