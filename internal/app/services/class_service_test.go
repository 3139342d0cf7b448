package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
)

func TestCreateAndGetClass(t *testing.T) {
	classes := newFakeClasses()
	svc := NewClassService(classes, newFakeEnrollments(), &fakeStorage{})

	created, err := svc.CreateClass(context.Background(), 1, dto.CreateClassRequest{Title: "OS Lab"})
	require.NoError(t, err)
	assert.Equal(t, "OS Lab", created.Title)
	assert.Equal(t, int64(1), created.CreatedBy)

	got, err := svc.GetClass(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetClassNotFound(t *testing.T) {
	svc := NewClassService(newFakeClasses(), newFakeEnrollments(), &fakeStorage{})

	_, err := svc.GetClass(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestEnrollUnknownClass(t *testing.T) {
	svc := NewClassService(newFakeClasses(), newFakeEnrollments(), &fakeStorage{})

	err := svc.Enroll(context.Background(), 99, 42)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestEnrollTwice(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	svc := NewClassService(classes, newFakeEnrollments(), &fakeStorage{})

	require.NoError(t, svc.Enroll(context.Background(), 1, 42))
	assert.ErrorIs(t, svc.Enroll(context.Background(), 1, 42), apperrors.ErrAlreadyEnrolled)
}

func TestUnenroll(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	svc := NewClassService(classes, enrollments, &fakeStorage{})

	require.NoError(t, svc.Enroll(context.Background(), 1, 42))
	require.NoError(t, svc.Unenroll(context.Background(), 1, 42))

	enrolled, err := enrollments.IsEnrolled(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestListStudentsUnknownClass(t *testing.T) {
	svc := NewClassService(newFakeClasses(), newFakeEnrollments(), &fakeStorage{})

	_, err := svc.ListStudents(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestDeleteClassCleansUpFiles(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	classes.cascadeFiles = []string{"uploads/a.pdf", "uploads/b.pdf"}

	storage := &fakeStorage{}
	svc := NewClassService(classes, newFakeEnrollments(), storage)

	require.NoError(t, svc.DeleteClass(context.Background(), 1))
	assert.Equal(t, []string{"uploads/a.pdf", "uploads/b.pdf"}, storage.deleted)

	_, err := svc.GetClass(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestRequireClassAccess(t *testing.T) {
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	tests := []struct {
		name    string
		classID int64
		userID  int64
		role    models.RoleType
		wantErr error
	}{
		{name: "aslab sees everything", classID: 7, userID: 1, role: models.RoleAslab},
		{name: "enrolled praktikan", classID: 1, userID: 42, role: models.RolePraktikan},
		{name: "unenrolled praktikan", classID: 1, userID: 43, role: models.RolePraktikan, wantErr: apperrors.ErrNotEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireClassAccess(context.Background(), enrollments, tt.classID, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
