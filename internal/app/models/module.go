package models

import "time"

// Module is a markdown content page belonging to a class, optionally
// grouped under a folder. A nil FolderID means root level within the class.
type Module struct {
	ID         int64     `json:"id" db:"id"`
	ClassID    int64     `json:"classId" db:"class_id"`
	FolderID   *int64    `json:"folderId,omitempty" db:"folder_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"` // markdown
	OrderIndex int       `json:"orderIndex" db:"order_index"`
	CreatedBy  int64     `json:"createdBy" db:"created_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	Files []*ModuleFile `json:"files,omitempty"`
}

// ModuleFile is an attachment owned exclusively by one module.
type ModuleFile struct {
	ID         int64     `json:"id" db:"id"`
	ModuleID   int64     `json:"moduleId" db:"module_id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	FileType   string    `json:"fileType" db:"file_type"` // MIME type
	FileSize   int64     `json:"fileSize" db:"file_size"`
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
