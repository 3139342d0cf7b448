package dto

import "time"

// CreateFolderRequest represents the request to create a module folder
type CreateFolderRequest struct {
	ClassID    int64  `json:"classId" binding:"required,min=1"`
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"orderIndex" binding:"omitempty,min=0"`
}

// UpdateFolderRequest represents the request to update a module folder.
// Title is mandatory on update; OrderIndex keeps its stored value when omitted.
type UpdateFolderRequest struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex *int   `json:"orderIndex" binding:"omitempty,min=0"`
}

// FolderResponse represents the response for a module folder
type FolderResponse struct {
	ID          int64     `json:"id"`
	ClassID     int64     `json:"classId"`
	ClassTitle  string    `json:"classTitle,omitempty"`
	Title       string    `json:"title"`
	OrderIndex  int       `json:"orderIndex"`
	ModuleCount int64     `json:"moduleCount"`
	CreatedBy   int64     `json:"createdBy"`
	CreatorName string    `json:"creatorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
