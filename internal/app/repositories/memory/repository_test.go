package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

func TestRepository_DuplicateKeys(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	require.NoError(t, repo.InsertDepartment(ctx, &models.Department{ID: 1, Name: "Physics"}))
	assert.ErrorIs(t, repo.InsertDepartment(ctx, &models.Department{ID: 1, Name: "Physics"}), apperrors.ErrDuplicateKey)

	require.NoError(t, repo.InsertStudent(ctx, &models.Student{ID: 1, Name: "ALICE", DepartmentID: 1}))
	assert.ErrorIs(t, repo.InsertStudent(ctx, &models.Student{ID: 1, Name: "BOB", DepartmentID: 1}), apperrors.ErrDuplicateKey)

	require.NoError(t, repo.InsertExam(ctx, &models.Exam{ID: 1, CourseID: 1, MaxMarks: 10}))
	assert.ErrorIs(t, repo.InsertExam(ctx, &models.Exam{ID: 1, CourseID: 1, MaxMarks: 10}), apperrors.ErrDuplicateKey)
}

func TestRepository_EnrollmentPairIsUnique(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.InsertEnrollment(ctx, &models.Enrollment{ID: 1, StudentID: 1, CourseID: 2, Date: now}))

	err := repo.InsertEnrollment(ctx, &models.Enrollment{ID: 2, StudentID: 1, CourseID: 2, Date: now})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)

	err = repo.InsertEnrollment(ctx, &models.Enrollment{ID: 1, StudentID: 1, CourseID: 3, Date: now})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	exists, err := repo.EnrollmentExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EnrollmentExists(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_FacultyDepartmentIsCopied(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	departmentID := int64(4)
	require.NoError(t, repo.InsertFaculty(ctx, &models.Faculty{ID: 1, Name: "Dr. Hopper", DepartmentID: &departmentID}))
	departmentID = 5

	faculty, err := repo.GetFaculty(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *faculty.DepartmentID)

	_, err = repo.GetFaculty(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRepository_NextStudentID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.NextStudentID(ctx)
	require.NoError(t, err)
	second, err := repo.NextStudentID(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestRepository_ListDepartmentsPaging(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, repo.InsertDepartment(ctx, &models.Department{ID: id, Name: "D"}))
	}

	page, err := repo.ListDepartments(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(1), page[0].ID)
	assert.Equal(t, int64(2), page[1].ID)

	page, err = repo.ListDepartments(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)

	page, err = repo.ListDepartments(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
