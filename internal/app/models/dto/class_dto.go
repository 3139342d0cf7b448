package dto

import (
	"time"

	"github.com/labspace/praktikum/internal/app/models"
)

// CreateClassRequest represents the request to create a class
type CreateClassRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

// UpdateClassRequest represents the request to update a class
type UpdateClassRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

// ClassResponse represents the response for a class
type ClassResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	CreatedBy    int64     `json:"createdBy"`
	CreatorName  string    `json:"creatorName,omitempty"`
	StudentCount int64     `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ClassListResponse represents a paginated list of classes
type ClassListResponse struct {
	Classes    []ClassResponse `json:"classes"`
	Pagination PaginationInfo  `json:"pagination"`
}

// EnrolledStudentResponse represents one enrolled student
type EnrolledStudentResponse struct {
	UserID     int64     `json:"userId"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// FromClass converts a models.Class to a ClassResponse
func FromClass(class *models.Class) ClassResponse {
	if class == nil {
		return ClassResponse{}
	}
	return ClassResponse{
		ID:          class.ID,
		Title:       class.Title,
		Description: class.Description,
		ImageURL:    class.ImageURL,
		CreatedBy:   class.CreatedBy,
		CreatedAt:   class.CreatedAt,
		UpdatedAt:   class.UpdatedAt,
	}
}
