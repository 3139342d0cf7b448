package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
)

func newAssignmentServiceForTest(assignments *fakeAssignments, submissions *fakeSubmissions, classes *fakeClasses, enrollments *fakeEnrollments) *AssignmentService {
	return NewAssignmentService(assignments, submissions, classes, enrollments)
}

func TestSubmitBeforeDeadline(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))

	svc := newAssignmentServiceForTest(assignments, newFakeSubmissions(), classes, enrollments)

	resp, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "my answer"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.AssignmentID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, "my answer", resp.Content)
	assert.Nil(t, resp.Grade)
}

func TestSubmitAfterDeadlineRejected(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	deadline := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	assignments.addAssignment(10, 1, deadline)

	svc := newAssignmentServiceForTest(assignments, newFakeSubmissions(), classes, enrollments)
	svc.now = func() time.Time { return deadline.Add(time.Minute) }

	_, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "late"})
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestSubmitExactlyAtDeadlineAccepted(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	deadline := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	assignments.addAssignment(10, 1, deadline)

	svc := newAssignmentServiceForTest(assignments, newFakeSubmissions(), classes, enrollments)
	svc.now = func() time.Time { return deadline }

	_, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "on time"})
	assert.NoError(t, err)
}

func TestSubmitFileURLCap(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))

	svc := newAssignmentServiceForTest(assignments, newFakeSubmissions(), classes, enrollments)

	urls := make([]string, models.MaxFilesPerSubmission+1)
	for i := range urls {
		urls[i] = "https://files.example/f"
	}
	_, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "x", FileURLs: urls})
	assert.ErrorIs(t, err, apperrors.ErrFileLimitExceeded)
}

func TestSubmitRequiresEnrollment(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))

	svc := newAssignmentServiceForTest(assignments, newFakeSubmissions(), classes, newFakeEnrollments())

	_, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}

func TestResubmissionClearsGrade(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))
	submissions := newFakeSubmissions()

	svc := newAssignmentServiceForTest(assignments, submissions, classes, enrollments)

	first, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "v1"})
	require.NoError(t, err)

	graded, err := svc.Grade(context.Background(), 10, first.ID, 1, dto.GradeRequest{Grade: 80, Feedback: "good"})
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)

	second, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "v2"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmission replaces the same row")
	assert.Equal(t, "v2", second.Content)
	assert.Nil(t, second.Grade, "resubmission invalidates the previous grade")
	assert.Nil(t, second.Feedback)
	assert.Nil(t, second.GradedAt)
}

func TestGradeRange(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))
	submissions := newFakeSubmissions()

	svc := newAssignmentServiceForTest(assignments, submissions, classes, enrollments)

	sub, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "x"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		grade   float64
		wantErr error
	}{
		{name: "below range", grade: -1, wantErr: apperrors.ErrInvalidGrade},
		{name: "above range", grade: 100.5, wantErr: apperrors.ErrInvalidGrade},
		{name: "lower bound", grade: 0},
		{name: "upper bound", grade: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Grade(context.Background(), 10, sub.ID, 1, dto.GradeRequest{Grade: tt.grade})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGradeRejectsSubmissionFromOtherAssignment(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))
	assignments.addAssignment(11, 1, time.Now().Add(24*time.Hour))
	submissions := newFakeSubmissions()

	svc := newAssignmentServiceForTest(assignments, submissions, classes, enrollments)

	sub, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "x"})
	require.NoError(t, err)

	_, err = svc.Grade(context.Background(), 11, sub.ID, 1, dto.GradeRequest{Grade: 50})
	assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)
}

func TestGradeRecordsGraderAndTime(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	enrollments := newFakeEnrollments()
	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))
	submissions := newFakeSubmissions()

	svc := newAssignmentServiceForTest(assignments, submissions, classes, enrollments)
	gradedAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return gradedAt }

	sub, err := svc.Submit(context.Background(), 10, 42, dto.SubmitRequest{Content: "x"})
	require.NoError(t, err)

	graded, err := svc.Grade(context.Background(), 10, sub.ID, 7, dto.GradeRequest{Grade: 92.5, Feedback: "solid"})
	require.NoError(t, err)

	require.NotNil(t, graded.Grade)
	assert.Equal(t, 92.5, *graded.Grade)
	require.NotNil(t, graded.Feedback)
	assert.Equal(t, "solid", *graded.Feedback)
	require.NotNil(t, graded.GradedAt)
	assert.Equal(t, gradedAt, *graded.GradedAt)
}

func TestListAssignmentsRequiresAccess(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")

	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))

	svc := newAssignmentServiceForTest(assignments, newFakeSubmissions(), classes, newFakeEnrollments())

	_, err := svc.ListAssignmentsByClass(context.Background(), 1, 42, models.RolePraktikan)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

	items, err := svc.ListAssignmentsByClass(context.Background(), 1, 7, models.RoleAslab)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListAssignmentsUnknownClass(t *testing.T) {
	svc := newAssignmentServiceForTest(newFakeAssignments(), newFakeSubmissions(), newFakeClasses(), newFakeEnrollments())

	_, err := svc.ListAssignmentsByClass(context.Background(), 99, 7, models.RoleAslab)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}
