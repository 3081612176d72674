package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/repositories/memory"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/metrics"
)

var examDate = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) *services.RecordsService {
	t.Helper()
	return services.NewRecordsService(memory.NewRepository(), metrics.NewCollector(), zerolog.Nop())
}

// seedDepartments creates 1 Computer Science, 2 Mathematics and 3 Physics
func seedDepartments(t *testing.T, svc *services.RecordsService) {
	t.Helper()
	ctx := context.Background()
	for id, name := range map[int64]string{1: "Computer Science", 2: "Mathematics", 3: "Physics"} {
		_, err := svc.CreateDepartment(ctx, id, name)
		require.NoError(t, err)
	}
}

func TestCreateDepartment(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	department, err := svc.CreateDepartment(ctx, 1, "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, &models.Department{ID: 1, Name: "Computer Science"}, department)

	_, err = svc.CreateDepartment(ctx, 1, "Other")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	name, err := svc.DepartmentName(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", name)
}

func TestCreateDepartment_InvalidArguments(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, 0, "Physics")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.CreateDepartment(ctx, -4, "Physics")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.CreateDepartment(ctx, 1, "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.CreateDepartment(ctx, 1, strings.Repeat("x", 101))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.DepartmentName(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Boundaries: id 1 and a name filling the column are accepted
	department, err := svc.CreateDepartment(ctx, 1, strings.Repeat("x", 100))
	require.NoError(t, err)
	assert.Len(t, department.Name, 100)
}

func TestCreateFaculty(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	departmentID := int64(2)
	faculty, err := svc.CreateFaculty(ctx, 10, "Dr. Noether", &departmentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *faculty.DepartmentID)

	unassigned, err := svc.CreateFaculty(ctx, 11, "Dr. Visitor", nil)
	require.NoError(t, err)
	assert.Nil(t, unassigned.DepartmentID)

	missing := int64(99)
	_, err = svc.CreateFaculty(ctx, 12, "Dr. Nowhere", &missing)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)

	_, err = svc.GetFaculty(ctx, 12)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.CreateFaculty(ctx, 10, "Dr. Again", nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestCreateStudent_AssignsSequentialIDsAndUpperCasesName(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	alice, err := svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)
	assert.Equal(t, "ALICE", alice.Name)

	bob, err := svc.CreateStudent(ctx, "bob", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)
	assert.Equal(t, "BOB", bob.Name)

	stored, err := svc.GetStudent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "BOB", stored.Name)
}

func TestCreateStudent_UnknownDepartmentLeavesNoRow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	before, err := svc.StudentCountByDepartment(ctx)
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, "Carol", 999)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)

	after, err := svc.StudentCountByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The rejected insert must not consume a counter value
	dave, err := svc.CreateStudent(ctx, "Dave", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dave.ID)
}

func TestCreateStudentWithID_CollidesWithCounter(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	_, err := svc.CreateStudentWithID(ctx, 1, "Legacy", 1)
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, "Next", 1)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	_, err = svc.CreateStudentWithID(ctx, 0, "Zero", 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestCreateCourse(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	course, err := svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.DepartmentID)

	_, err = svc.CreateCourse(ctx, 102, "Nowhere", 42)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)

	_, err = svc.GetCourse(ctx, 102)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateEnrollment_RejectsDuplicatePair(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	_, err := svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(ctx, 1, 1, 101, examDate)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(ctx, 2, 1, 101, examDate)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)

	_, err = svc.CreateEnrollment(ctx, 1, 1, 101, examDate)
	assert.Error(t, err)
}

func TestCreateEnrollment_UnknownReferences(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	_, err := svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(ctx, 1, 77, 101, examDate)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)

	_, err = svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(ctx, 1, 1, 555, examDate)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)

	// Neither failure left an enrollment behind
	_, err = svc.CreateEnrollment(ctx, 1, 1, 101, examDate)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(ctx, 2, 1, 101, time.Time{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

// pairBlindRepository stores enrollments without a (student, course) constraint, so the
// service's pair lock is the only thing keeping duplicates out.
type pairBlindRepository struct {
	*memory.Repository

	mu          sync.Mutex
	enrollments []models.Enrollment
}

func (r *pairBlindRepository) EnrollmentExists(_ context.Context, studentID, courseID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *pairBlindRepository) InsertEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	// Widen the window between the existence check and the write
	time.Sleep(5 * time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrollments = append(r.enrollments, *enrollment)
	return nil
}

func TestCreateEnrollment_ConcurrentSamePair(t *testing.T) {
	repo := &pairBlindRepository{Repository: memory.NewRepository()}
	svc := services.NewRecordsService(repo, metrics.NewCollector(), zerolog.Nop())
	ctx := context.Background()
	seedDepartments(t, svc)

	_, err := svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 1; i <= attempts; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := svc.CreateEnrollment(ctx, id, 1, 101, examDate)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, apperrors.ErrDuplicateEnrollment) {
				rejected++
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, repo.enrollments, 1)
}

func TestCreateEnrollment_DistinctPairsDoNotBlock(t *testing.T) {
	repo := &pairBlindRepository{Repository: memory.NewRepository()}
	svc := services.NewRecordsService(repo, nil, zerolog.Nop())
	ctx := context.Background()
	seedDepartments(t, svc)

	for _, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		_, err := svc.CreateStudent(ctx, name, 1)
		require.NoError(t, err)
	}
	_, err := svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateEnrollment(ctx, int64(i+1), int64(i+1), 101, examDate)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, repo.enrollments, 4)
}

func TestCreateExam_MaxMarksMustBePositive(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	_, err := svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)

	_, err = svc.CreateExam(ctx, 1, 101, examDate, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.CreateExam(ctx, 2, 101, examDate, -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	exam, err := svc.CreateExam(ctx, 3, 101, examDate, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, exam.MaxMarks)

	_, err = svc.CreateExam(ctx, 4, 999, examDate, 50)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)
}

func TestTotalMarksForStudent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	alice, err := svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	bob, err := svc.CreateStudent(ctx, "Bob", 2)
	require.NoError(t, err)

	_, err = svc.CreateCourse(ctx, 101, "Algorithms", 1)
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, 201, "Linear Algebra", 2)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(ctx, 1, alice.ID, 101, examDate)
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(ctx, 2, alice.ID, 201, examDate)
	require.NoError(t, err)

	_, err = svc.CreateExam(ctx, 1, 101, examDate, 100)
	require.NoError(t, err)
	_, err = svc.CreateExam(ctx, 2, 201, examDate, 60)
	require.NoError(t, err)
	_, err = svc.CreateExam(ctx, 3, 201, examDate, 40)
	require.NoError(t, err)

	total, err := svc.TotalMarksForStudent(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), total)

	total, err = svc.TotalMarksForStudent(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	total, err = svc.TotalMarksForStudent(ctx, 404)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStudentCountByDepartment(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	counts, err := svc.StudentCountByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Computer Science": 0, "Mathematics": 0, "Physics": 0}, counts)

	for name, departmentID := range map[string]int64{"Alice": 1, "Bob": 2, "Carol": 3} {
		_, err := svc.CreateStudent(ctx, name, departmentID)
		require.NoError(t, err)
	}

	counts, err = svc.StudentCountByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Computer Science": 1, "Mathematics": 1, "Physics": 1}, counts)
}

func TestStudentCountByDepartment_SharedNamesAreSummed(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, 1, "Physics")
	require.NoError(t, err)
	_, err = svc.CreateDepartment(ctx, 2, "Physics")
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	_, err = svc.CreateStudent(ctx, "Bob", 2)
	require.NoError(t, err)

	counts, err := svc.StudentCountByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Physics": 2}, counts)
}

func TestStudentsWithMultipleCourses(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	rows, err := svc.StudentsWithMultipleCourses(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	alice, err := svc.CreateStudent(ctx, "Alice", 1)
	require.NoError(t, err)
	bob, err := svc.CreateStudent(ctx, "Bob", 1)
	require.NoError(t, err)

	for id, name := range map[int64]string{101: "Algorithms", 102: "Databases", 103: "Networks"} {
		_, err := svc.CreateCourse(ctx, id, name, 1)
		require.NoError(t, err)
	}

	enrollments := []struct {
		id, student, course int64
	}{
		{1, alice.ID, 101},
		{2, alice.ID, 102},
		{3, alice.ID, 103},
		{4, bob.ID, 101},
	}
	for _, e := range enrollments {
		_, err := svc.CreateEnrollment(ctx, e.id, e.student, e.course, examDate)
		require.NoError(t, err)
	}

	rows, err = svc.StudentsWithMultipleCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StudentCourseCount{
		{StudentID: alice.ID, StudentName: "ALICE", CourseCount: 3},
	}, rows)
}

func TestListDepartments(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seedDepartments(t, svc)

	page, total, err := svc.ListDepartments(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Mathematics", page[0].Name)

	page, total, err = svc.ListDepartments(ctx, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, page)
}
