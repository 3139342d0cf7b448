package dto

import (
	"time"

	"github.com/labspace/praktikum/internal/app/models"
)

// CreateNewsRequest represents the request to create an announcement.
// LinkedType and LinkedID must be provided together or not at all.
type CreateNewsRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	ImageURL   *string `json:"imageUrl" binding:"omitempty,url"`
	LinkedType *string `json:"linkedType" binding:"omitempty,oneof=CLASS MODULE ASSIGNMENT"`
	LinkedID   *int64  `json:"linkedId" binding:"omitempty,min=1"`
}

// UpdateNewsRequest represents the request to update an announcement
type UpdateNewsRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	ImageURL   *string `json:"imageUrl" binding:"omitempty,url"`
	LinkedType *string `json:"linkedType" binding:"omitempty,oneof=CLASS MODULE ASSIGNMENT"`
	LinkedID   *int64  `json:"linkedId" binding:"omitempty,min=1"`
}

// LinkedInfo is the display-friendly resolution of a news link. Nil when
// the news has no link or the linked entity has since been deleted.
type LinkedInfo struct {
	EntityType string `json:"entityType" enums:"CLASS,MODULE,ASSIGNMENT"`
	ID         int64  `json:"id"`
	Title      string `json:"title"`
}

// NewsResponse represents the response for an announcement
type NewsResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
	CreatedBy   int64       `json:"createdBy"`
	CreatorName string      `json:"creatorName,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	LinkedInfo  *LinkedInfo `json:"linkedInfo,omitempty"`
}

// NewsListResponse represents a paginated list of announcements
type NewsListResponse struct {
	News       []NewsResponse `json:"news"`
	Pagination PaginationInfo `json:"pagination"`
}

// FromNews converts a models.News to a NewsResponse without link resolution
func FromNews(n *models.News) NewsResponse {
	return NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		ImageURL:  n.ImageURL,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
