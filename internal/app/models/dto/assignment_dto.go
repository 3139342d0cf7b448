package dto

import (
	"time"

	"github.com/labspace/praktikum/internal/app/models"
)

// CreateAssignmentRequest represents the request to create an assignment
type CreateAssignmentRequest struct {
	ClassID     int64     `json:"classId" binding:"required,min=1"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// UpdateAssignmentRequest represents the request to update an assignment
type UpdateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// AssignmentResponse represents the response for an assignment
type AssignmentResponse struct {
	ID             int64                 `json:"id"`
	ClassID        int64                 `json:"classId"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Deadline       time.Time             `json:"deadline"`
	DeadlineStatus models.DeadlineStatus `json:"deadlineStatus" enums:"URGENT,SOON,COMFORTABLE"`
	CreatedBy      int64                 `json:"createdBy"`
	CreatorName    string                `json:"creatorName,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// SubmitRequest represents a praktikan submitting or resubmitting work.
// FileURLs holds uploaded file locations, capped at five.
type SubmitRequest struct {
	Content  string   `json:"content" binding:"required"`
	FileURLs []string `json:"fileUrls" binding:"omitempty,max=5,dive,url"`
}

// GradeRequest represents an aslab grading a submission
type GradeRequest struct {
	Grade    float64 `json:"grade" binding:"min=0,max=100"`
	Feedback string  `json:"feedback"`
}

// SubmissionResponse represents the response for a submission
type SubmissionResponse struct {
	ID            int64      `json:"id"`
	AssignmentID  int64      `json:"assignmentId"`
	UserID        int64      `json:"userId"`
	SubmitterName string     `json:"submitterName,omitempty"`
	Content       string     `json:"content"`
	FileURLs      []string   `json:"fileUrls"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Grade         *float64   `json:"grade,omitempty"`
	Feedback      *string    `json:"feedback,omitempty"`
	GradedAt      *time.Time `json:"gradedAt,omitempty"`
	GraderName    *string    `json:"graderName,omitempty"`
}

// FromAssignment converts a models.Assignment to an AssignmentResponse
func FromAssignment(a *models.Assignment, now time.Time) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		ClassID:        a.ClassID,
		Title:          a.Title,
		Description:    a.Description,
		Deadline:       a.Deadline,
		DeadlineStatus: models.ClassifyDeadline(a.Deadline, now),
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromSubmission converts a models.Submission to a SubmissionResponse
func FromSubmission(s *models.Submission) SubmissionResponse {
	fileURLs := s.FileURLs
	if fileURLs == nil {
		fileURLs = []string{}
	}
	return SubmissionResponse{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		UserID:       s.UserID,
		Content:      s.Content,
		FileURLs:     fileURLs,
		SubmittedAt:  s.SubmittedAt,
		UpdatedAt:    s.UpdatedAt,
		Grade:        s.Grade,
		Feedback:     s.Feedback,
		GradedAt:     s.GradedAt,
	}
}
