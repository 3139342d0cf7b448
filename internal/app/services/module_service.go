package services

import (
	"context"
	"mime/multipart"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/filestorage"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// moduleStore is the slice of ModuleRepository the module service needs.
type moduleStore interface {
	CreateModule(ctx context.Context, module *models.Module) (int64, error)
	GetModuleByID(ctx context.Context, id int64) (*repositories.ModuleDetails, error)
	ListModulesByClass(ctx context.Context, classID int64) ([]*repositories.ModuleDetails, error)
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModuleCascade(ctx context.Context, moduleID int64) ([]string, error)
	CountFiles(ctx context.Context, moduleID int64) (int, error)
	AddFile(ctx context.Context, file *models.ModuleFile) (int64, error)
	GetFile(ctx context.Context, moduleID, fileID int64) (*models.ModuleFile, error)
	DeleteFile(ctx context.Context, moduleID, fileID int64) error
}

// folderGetter is the slice of FolderRepository the module service needs.
type folderGetter interface {
	GetFolderByID(ctx context.Context, id int64) (*repositories.FolderDetails, error)
}

// ModuleService handles module and attachment management.
type ModuleService struct {
	modules     moduleStore
	folders     folderGetter
	classes     classChecker
	enrollments enrollmentChecker
	storage     filestorage.FileStorage
}

// NewModuleService creates a new instance of ModuleService.
func NewModuleService(modules moduleStore, folders folderGetter, classes classChecker, enrollments enrollmentChecker, storage filestorage.FileStorage) *ModuleService {
	return &ModuleService{
		modules:     modules,
		folders:     folders,
		classes:     classes,
		enrollments: enrollments,
		storage:     storage,
	}
}

func moduleDetailsResponse(md *repositories.ModuleDetails) dto.ModuleResponse {
	resp := dto.FromModule(&md.Module)
	resp.CreatorName = md.CreatorName
	return resp
}

// checkFolderBelongsToClass rejects a folder id from a different class.
func (s *ModuleService) checkFolderBelongsToClass(ctx context.Context, folderID *int64, classID int64) error {
	if folderID == nil {
		return nil
	}
	folder, err := s.folders.GetFolderByID(ctx, *folderID)
	if err != nil {
		return err
	}
	if folder.ClassID != classID {
		return apperrors.ErrFolderClassMismatch
	}
	return nil
}

// CreateModule creates a module inside a class, optionally placed in a folder
// of the same class.
func (s *ModuleService) CreateModule(ctx context.Context, creatorID int64, req dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	exists, err := s.classes.ClassExists(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	if err := s.checkFolderBelongsToClass(ctx, req.FolderID, req.ClassID); err != nil {
		return nil, err
	}

	module := &models.Module{
		ClassID:    req.ClassID,
		FolderID:   req.FolderID,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
		CreatedBy:  creatorID,
	}

	id, err := s.modules.CreateModule(ctx, module)
	if err != nil {
		return nil, err
	}

	created, err := s.modules.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("moduleID", id).Int64("classID", req.ClassID).Msg("Module created")
	resp := moduleDetailsResponse(created)
	return &resp, nil
}

// GetModule retrieves one module with its files, gated by class access.
func (s *ModuleService) GetModule(ctx context.Context, id, userID int64, role models.RoleType) (*dto.ModuleResponse, error) {
	module, err := s.modules.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireClassAccess(ctx, s.enrollments, module.ClassID, userID, role); err != nil {
		return nil, err
	}

	resp := moduleDetailsResponse(module)
	return &resp, nil
}

// ListModulesByClass returns a class's modules in display order, gated by
// class access.
func (s *ModuleService) ListModulesByClass(ctx context.Context, classID, userID int64, role models.RoleType) ([]dto.ModuleResponse, error) {
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

	modules, err := s.modules.ListModulesByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		items = append(items, moduleDetailsResponse(m))
	}
	return items, nil
}

// UpdateModule updates a module's editable fields. Moving the module into a
// folder revalidates that the folder belongs to the module's class.
func (s *ModuleService) UpdateModule(ctx context.Context, id int64, req dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	existing, err := s.modules.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkFolderBelongsToClass(ctx, req.FolderID, existing.ClassID); err != nil {
		return nil, err
	}

	orderIndex := existing.OrderIndex
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	}

	module := &models.Module{
		ID:         id,
		FolderID:   req.FolderID,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: orderIndex,
	}

	if err := s.modules.UpdateModule(ctx, module); err != nil {
		return nil, err
	}

	updated, err := s.modules.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := moduleDetailsResponse(updated)
	return &resp, nil
}

// DeleteModule removes a module and its files, then cleans up the disk.
func (s *ModuleService) DeleteModule(ctx context.Context, id int64) error {
	filePaths, err := s.modules.DeleteModuleCascade(ctx, id)
	if err != nil {
		return err
	}

	for _, p := range filePaths {
		if err := s.storage.DeleteFile(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Failed to remove file of deleted module")
		}
	}

	logger.Info().Int64("moduleID", id).Int("filesRemoved", len(filePaths)).Msg("Module deleted")
	return nil
}

// UploadFile attaches an uploaded file to a module, enforcing the per-module
// attachment cap.
func (s *ModuleService) UploadFile(ctx context.Context, moduleID, uploaderID int64, fileHeader *multipart.FileHeader) (*dto.ModuleFileResponse, error) {
	if _, err := s.modules.GetModuleByID(ctx, moduleID); err != nil {
		return nil, err
	}

	count, err := s.modules.CountFiles(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxFilesPerModule {
		return nil, apperrors.ErrFileLimitExceeded
	}

	savedPath, err := s.storage.SaveFile(fileHeader)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Failed to save module file")
		return nil, err
	}

	file := &models.ModuleFile{
		ModuleID:   moduleID,
		FileName:   fileHeader.Filename,
		FilePath:   savedPath,
		FileURL:    savedPath,
		FileType:   fileHeader.Header.Get("Content-Type"),
		FileSize:   fileHeader.Size,
		UploadedBy: uploaderID,
	}

	id, err := s.modules.AddFile(ctx, file)
	if err != nil {
		// Do not leak the file when the record cannot be stored
		if cleanupErr := s.storage.DeleteFile(savedPath); cleanupErr != nil {
			logger.Warn().Err(cleanupErr).Str("path", savedPath).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}
	file.ID = id

	logger.Info().Int64("moduleID", moduleID).Int64("fileID", id).Str("fileName", file.FileName).Msg("Module file uploaded")
	resp := dto.FromModuleFile(file)
	return &resp, nil
}

// DeleteFile detaches and removes one module attachment.
func (s *ModuleService) DeleteFile(ctx context.Context, moduleID, fileID int64) error {
	file, err := s.modules.GetFile(ctx, moduleID, fileID)
	if err != nil {
		return err
	}

	if err := s.modules.DeleteFile(ctx, moduleID, fileID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(file.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", file.FilePath).Msg("Failed to remove deleted module file from disk")
	}
	return nil
}
