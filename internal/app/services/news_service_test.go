package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labspace/praktikum/internal/pkg/apperrors"

	"github.com/labspace/praktikum/internal/app/models/dto"
)

func newNewsServiceForTest(news *fakeNews, classes *fakeClasses, modules *fakeModules, assignments *fakeAssignments) *NewsService {
	return NewNewsService(news, classes, modules, assignments)
}

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func TestCreateNewsWithoutLink(t *testing.T) {
	svc := newNewsServiceForTest(newFakeNews(), newFakeClasses(), newFakeModules(), newFakeAssignments())

	resp, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
		Title:   "Lab closed",
		Content: "No session this week.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lab closed", resp.Title)
	assert.Nil(t, resp.LinkedInfo)
}

func TestCreateNewsLinkFieldsTravelTogether(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	svc := newNewsServiceForTest(newFakeNews(), classes, newFakeModules(), newFakeAssignments())

	tests := []struct {
		name       string
		linkedType *string
		linkedID   *int64
	}{
		{name: "type without id", linkedType: strPtr("CLASS")},
		{name: "id without type", linkedID: i64Ptr(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
				Title:      "t",
				Content:    "c",
				LinkedType: tt.linkedType,
				LinkedID:   tt.linkedID,
			})
			assert.ErrorIs(t, err, apperrors.ErrIncompleteLink)
		})
	}
}

func TestCreateNewsLinkedEntityMustExist(t *testing.T) {
	svc := newNewsServiceForTest(newFakeNews(), newFakeClasses(), newFakeModules(), newFakeAssignments())

	tests := []struct {
		name       string
		linkedType string
	}{
		{name: "missing class", linkedType: "CLASS"},
		{name: "missing module", linkedType: "MODULE"},
		{name: "missing assignment", linkedType: "ASSIGNMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
				Title:      "t",
				Content:    "c",
				LinkedType: strPtr(tt.linkedType),
				LinkedID:   i64Ptr(99),
			})
			assert.ErrorIs(t, err, apperrors.ErrLinkedEntityNotFound)
		})
	}
}

func TestCreateNewsWithValidLink(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	svc := newNewsServiceForTest(newFakeNews(), classes, newFakeModules(), newFakeAssignments())

	resp, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
		Title:      "New class",
		Content:    "Enroll now.",
		LinkedType: strPtr("CLASS"),
		LinkedID:   i64Ptr(1),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.LinkedInfo)
	assert.Equal(t, "CLASS", resp.LinkedInfo.EntityType)
	assert.Equal(t, int64(1), resp.LinkedInfo.ID)
	assert.Equal(t, "OS Lab", resp.LinkedInfo.Title)
}

func TestCreateNewsUnknownLinkedTypeRejected(t *testing.T) {
	svc := newNewsServiceForTest(newFakeNews(), newFakeClasses(), newFakeModules(), newFakeAssignments())

	_, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
		Title:      "t",
		Content:    "c",
		LinkedType: strPtr("USER"),
		LinkedID:   i64Ptr(1),
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetNewsDeletedLinkTargetResolvesToNil(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	news := newFakeNews()
	svc := newNewsServiceForTest(news, classes, newFakeModules(), newFakeAssignments())

	created, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
		Title:      "New class",
		Content:    "Enroll now.",
		LinkedType: strPtr("CLASS"),
		LinkedID:   i64Ptr(1),
	})
	require.NoError(t, err)
	require.NotNil(t, created.LinkedInfo)

	// The class goes away but the announcement stays
	_, err = classes.DeleteClassCascade(context.Background(), 1)
	require.NoError(t, err)

	got, err := svc.GetNews(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LinkedInfo)
}

func TestUpdateNewsReplacesLink(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	assignments := newFakeAssignments()
	assignments.addAssignment(10, 1, time.Now().Add(24*time.Hour))
	news := newFakeNews()
	svc := newNewsServiceForTest(news, classes, newFakeModules(), assignments)

	created, err := svc.CreateNews(context.Background(), 1, dto.CreateNewsRequest{
		Title:      "t",
		Content:    "c",
		LinkedType: strPtr("CLASS"),
		LinkedID:   i64Ptr(1),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateNews(context.Background(), created.ID, dto.UpdateNewsRequest{
		Title:      "t2",
		Content:    "c2",
		LinkedType: strPtr("ASSIGNMENT"),
		LinkedID:   i64Ptr(10),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.LinkedInfo)
	assert.Equal(t, "ASSIGNMENT", updated.LinkedInfo.EntityType)

	// Omitting both fields clears the link
	cleared, err := svc.UpdateNews(context.Background(), created.ID, dto.UpdateNewsRequest{Title: "t3", Content: "c3"})
	require.NoError(t, err)
	assert.Nil(t, cleared.LinkedInfo)
}

func TestDeleteNewsUnknownID(t *testing.T) {
	svc := newNewsServiceForTest(newFakeNews(), newFakeClasses(), newFakeModules(), newFakeAssignments())
	assert.ErrorIs(t, svc.DeleteNews(context.Background(), 99), apperrors.ErrNewsNotFound)
}
