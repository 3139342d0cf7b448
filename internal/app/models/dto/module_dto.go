package dto

import (
	"time"

	"github.com/labspace/praktikum/internal/app/models"
)

// CreateModuleRequest represents the request to create a module
type CreateModuleRequest struct {
	ClassID    int64  `json:"classId" binding:"required,min=1"`
	FolderID   *int64 `json:"folderId" binding:"omitempty,min=1"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"orderIndex" binding:"omitempty,min=0"`
}

// UpdateModuleRequest represents the request to update a module
type UpdateModuleRequest struct {
	FolderID   *int64 `json:"folderId" binding:"omitempty,min=1"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex *int   `json:"orderIndex" binding:"omitempty,min=0"`
}

// ModuleFileResponse represents one module attachment
type ModuleFileResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

// ModuleResponse represents the response for a module
type ModuleResponse struct {
	ID          int64                `json:"id"`
	ClassID     int64                `json:"classId"`
	FolderID    *int64               `json:"folderId,omitempty"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	OrderIndex  int                  `json:"orderIndex"`
	CreatedBy   int64                `json:"createdBy"`
	CreatorName string               `json:"creatorName,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Files       []ModuleFileResponse `json:"files"`
}

// FromModuleFile converts a models.ModuleFile to a ModuleFileResponse
func FromModuleFile(f *models.ModuleFile) ModuleFileResponse {
	return ModuleFileResponse{
		ID:        f.ID,
		FileName:  f.FileName,
		FileURL:   f.FileURL,
		FileType:  f.FileType,
		FileSize:  f.FileSize,
		CreatedAt: f.CreatedAt,
	}
}

// FromModule converts a models.Module to a ModuleResponse
func FromModule(m *models.Module) ModuleResponse {
	files := make([]ModuleFileResponse, 0, len(m.Files))
	for _, f := range m.Files {
		files = append(files, FromModuleFile(f))
	}
	return ModuleResponse{
		ID:         m.ID,
		ClassID:    m.ClassID,
		FolderID:   m.FolderID,
		Title:      m.Title,
		Content:    m.Content,
		OrderIndex: m.OrderIndex,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Files:      files,
	}
}
