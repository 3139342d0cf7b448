package filestorage

import "mime/multipart"

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file and returns the accessible path/URL
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}
