package services

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
)

func newModuleServiceForTest(modules *fakeModules, folders *fakeFolders, classes *fakeClasses, enrollments *fakeEnrollments, storage *fakeStorage) *ModuleService {
	return NewModuleService(modules, folders, classes, enrollments, storage)
}

func uploadHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
		Size:     1024,
	}
}

func TestCreateModuleRejectsFolderFromOtherClass(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	classes.addClass(2, "Networks Lab")
	folders := newFakeFolders()
	folders.addFolder(5, 2, "Week 1")

	svc := newModuleServiceForTest(newFakeModules(), folders, classes, newFakeEnrollments(), &fakeStorage{})

	folderID := int64(5)
	_, err := svc.CreateModule(context.Background(), 1, dto.CreateModuleRequest{
		ClassID:  1,
		FolderID: &folderID,
		Title:    "Intro",
	})
	assert.ErrorIs(t, err, apperrors.ErrFolderClassMismatch)
}

func TestCreateModuleWithMatchingFolder(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	folders := newFakeFolders()
	folders.addFolder(5, 1, "Week 1")

	svc := newModuleServiceForTest(newFakeModules(), folders, classes, newFakeEnrollments(), &fakeStorage{})

	folderID := int64(5)
	resp, err := svc.CreateModule(context.Background(), 1, dto.CreateModuleRequest{
		ClassID:  1,
		FolderID: &folderID,
		Title:    "Intro",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FolderID)
	assert.Equal(t, int64(5), *resp.FolderID)
}

func TestUpdateModuleKeepsOrderIndexWhenOmitted(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	modules := newFakeModules()
	modules.addModule(3, 1, "Intro")
	modules.modules[3].OrderIndex = 7

	svc := newModuleServiceForTest(modules, newFakeFolders(), classes, newFakeEnrollments(), &fakeStorage{})

	resp, err := svc.UpdateModule(context.Background(), 3, dto.UpdateModuleRequest{Title: "Intro v2"})
	require.NoError(t, err)
	assert.Equal(t, "Intro v2", resp.Title)
	assert.Equal(t, 7, resp.OrderIndex)
}

func TestUploadFileCap(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	modules := newFakeModules()
	modules.addModule(3, 1, "Intro")

	storage := &fakeStorage{}
	svc := newModuleServiceForTest(modules, newFakeFolders(), classes, newFakeEnrollments(), storage)

	for i := 0; i < models.MaxFilesPerModule; i++ {
		_, err := svc.UploadFile(context.Background(), 3, 1, uploadHeader("slides.pdf"))
		require.NoError(t, err)
	}

	_, err := svc.UploadFile(context.Background(), 3, 1, uploadHeader("one-too-many.pdf"))
	assert.ErrorIs(t, err, apperrors.ErrFileLimitExceeded)
	assert.Len(t, storage.saved, models.MaxFilesPerModule, "rejected upload must not hit storage")
}

func TestUploadFileRecordsMetadata(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	modules := newFakeModules()
	modules.addModule(3, 1, "Intro")

	svc := newModuleServiceForTest(modules, newFakeFolders(), classes, newFakeEnrollments(), &fakeStorage{})

	resp, err := svc.UploadFile(context.Background(), 3, 1, uploadHeader("slides.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "slides.pdf", resp.FileName)
	assert.Equal(t, "application/pdf", resp.FileType)
	assert.Equal(t, int64(1024), resp.FileSize)
}

func TestUploadFileUnknownModule(t *testing.T) {
	svc := newModuleServiceForTest(newFakeModules(), newFakeFolders(), newFakeClasses(), newFakeEnrollments(), &fakeStorage{})

	_, err := svc.UploadFile(context.Background(), 99, 1, uploadHeader("slides.pdf"))
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
}

func TestDeleteModuleCleansUpFiles(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	modules := newFakeModules()
	modules.addModule(3, 1, "Intro")

	storage := &fakeStorage{}
	svc := newModuleServiceForTest(modules, newFakeFolders(), classes, newFakeEnrollments(), storage)

	_, err := svc.UploadFile(context.Background(), 3, 1, uploadHeader("slides.pdf"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteModule(context.Background(), 3))
	assert.Equal(t, []string{"fake-slides.pdf"}, storage.deleted)
}

func TestDeleteFileRemovesRecordAndDisk(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	modules := newFakeModules()
	modules.addModule(3, 1, "Intro")

	storage := &fakeStorage{}
	svc := newModuleServiceForTest(modules, newFakeFolders(), classes, newFakeEnrollments(), storage)

	file, err := svc.UploadFile(context.Background(), 3, 1, uploadHeader("slides.pdf"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), 3, file.ID))

	count, err := modules.CountFiles(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, storage.deleted, "fake-slides.pdf")
}

func TestGetModuleGatedByEnrollment(t *testing.T) {
	classes := newFakeClasses()
	classes.addClass(1, "OS Lab")
	modules := newFakeModules()
	modules.addModule(3, 1, "Intro")
	enrollments := newFakeEnrollments()

	svc := newModuleServiceForTest(modules, newFakeFolders(), classes, enrollments, &fakeStorage{})

	_, err := svc.GetModule(context.Background(), 3, 42, models.RolePraktikan)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

	require.NoError(t, enrollments.Enroll(context.Background(), 1, 42))
	resp, err := svc.GetModule(context.Background(), 3, 42, models.RolePraktikan)
	require.NoError(t, err)
	assert.Equal(t, "Intro", resp.Title)
}
