package services

import (
	"context"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/filestorage"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// classChecker is the slice of ClassRepository used by services that only
// need to verify a class exists.
type classChecker interface {
	ClassExists(ctx context.Context, id int64) (bool, error)
}

// folderStore is the slice of FolderRepository the folder service needs.
type folderStore interface {
	CreateFolder(ctx context.Context, folder *models.ModuleFolder) (int64, error)
	GetFolderByID(ctx context.Context, id int64) (*repositories.FolderDetails, error)
	ListFoldersByClass(ctx context.Context, classID int64) ([]*repositories.FolderDetails, error)
	UpdateFolder(ctx context.Context, folder *models.ModuleFolder) error
	DeleteFolderCascade(ctx context.Context, folderID int64) ([]string, error)
}

// FolderService handles module folder management.
type FolderService struct {
	folders     folderStore
	classes     classChecker
	enrollments enrollmentChecker
	storage     filestorage.FileStorage
}

// NewFolderService creates a new instance of FolderService.
func NewFolderService(folders folderStore, classes classChecker, enrollments enrollmentChecker, storage filestorage.FileStorage) *FolderService {
	return &FolderService{
		folders:     folders,
		classes:     classes,
		enrollments: enrollments,
		storage:     storage,
	}
}

func folderDetailsResponse(fd *repositories.FolderDetails) dto.FolderResponse {
	return dto.FolderResponse{
		ID:          fd.ID,
		ClassID:     fd.ClassID,
		ClassTitle:  fd.ClassTitle,
		Title:       fd.Title,
		OrderIndex:  fd.OrderIndex,
		ModuleCount: fd.ModuleCount,
		CreatedBy:   fd.CreatedBy,
		CreatorName: fd.CreatorName,
		CreatedAt:   fd.CreatedAt,
		UpdatedAt:   fd.UpdatedAt,
	}
}

// CreateFolder creates a folder inside a class.
func (s *FolderService) CreateFolder(ctx context.Context, creatorID int64, req dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	exists, err := s.classes.ClassExists(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	folder := &models.ModuleFolder{
		ClassID:    req.ClassID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
		CreatedBy:  creatorID,
	}

	id, err := s.folders.CreateFolder(ctx, folder)
	if err != nil {
		return nil, err
	}

	created, err := s.folders.GetFolderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("folderID", id).Int64("classID", req.ClassID).Msg("Folder created")
	resp := folderDetailsResponse(created)
	return &resp, nil
}

// GetFolder retrieves one folder, gated by class access.
func (s *FolderService) GetFolder(ctx context.Context, id, userID int64, role models.RoleType) (*dto.FolderResponse, error) {
	folder, err := s.folders.GetFolderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireClassAccess(ctx, s.enrollments, folder.ClassID, userID, role); err != nil {
		return nil, err
	}

	resp := folderDetailsResponse(folder)
	return &resp, nil
}

// ListFoldersByClass returns a class's folders in display order, gated by
// class access.
func (s *FolderService) ListFoldersByClass(ctx context.Context, classID, userID int64, role models.RoleType) ([]dto.FolderResponse, error) {
	exists, err := s.classes.ClassExists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	if err := requireClassAccess(ctx, s.enrollments, classID, userID, role); err != nil {
		return nil, err
	}

	folders, err := s.folders.ListFoldersByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FolderResponse, 0, len(folders))
	for _, f := range folders {
		items = append(items, folderDetailsResponse(f))
	}
	return items, nil
}

// UpdateFolder updates a folder's title and, when provided, its order index.
func (s *FolderService) UpdateFolder(ctx context.Context, id int64, req dto.UpdateFolderRequest) (*dto.FolderResponse, error) {
	existing, err := s.folders.GetFolderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orderIndex := existing.OrderIndex
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	}

	folder := &models.ModuleFolder{
		ID:         id,
		Title:      req.Title,
		OrderIndex: orderIndex,
	}

	if err := s.folders.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}

	updated, err := s.folders.GetFolderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := folderDetailsResponse(updated)
	return &resp, nil
}

// DeleteFolder removes a folder together with its modules and their files,
// then cleans up the stored files.
func (s *FolderService) DeleteFolder(ctx context.Context, id int64) error {
	filePaths, err := s.folders.DeleteFolderCascade(ctx, id)
	if err != nil {
		return err
	}

	for _, p := range filePaths {
		if err := s.storage.DeleteFile(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Failed to remove file of deleted folder")
		}
	}

	logger.Info().Int64("folderID", id).Int("filesRemoved", len(filePaths)).Msg("Folder deleted")
	return nil
}
