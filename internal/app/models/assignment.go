package models

import (
	"math"
	"time"
)

// DeadlineStatus is a display-only classification of how close an
// assignment deadline is. It carries no enforcement semantics; the hard
// deadline gate lives in the assignment service.
type DeadlineStatus string

const (
	DeadlineUrgent      DeadlineStatus = "URGENT"      // due within a day or already passed
	DeadlineSoon        DeadlineStatus = "SOON"        // due within four days
	DeadlineComfortable DeadlineStatus = "COMFORTABLE" // more than four days away
)

// ClassifyDeadline buckets a deadline relative to now. Days are counted as
// ceil of the remaining time in 24h units, so a deadline 25 hours away
// counts as 2 days.
func ClassifyDeadline(deadline, now time.Time) DeadlineStatus {
	diffDays := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	switch {
	case diffDays <= 1:
		return DeadlineUrgent
	case diffDays <= 4:
		return DeadlineSoon
	default:
		return DeadlineComfortable
	}
}

// Assignment is a deadline-gated task belonging to one class.
type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	ClassID     int64     `json:"classId" db:"class_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"` // markdown
	Deadline    time.Time `json:"deadline" db:"deadline"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Submission is a student's single answer to an assignment. At most one
// row exists per (assignment_id, user_id); resubmission replaces content.
type Submission struct {
	ID           int64      `json:"id" db:"id"`
	AssignmentID int64      `json:"assignmentId" db:"assignment_id"`
	UserID       int64      `json:"userId" db:"user_id"`
	Content      string     `json:"content" db:"content"`
	FileURLs     []string   `json:"fileUrls" db:"-"`
	SubmittedAt  time.Time  `json:"submittedAt" db:"submitted_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	Grade        *float64   `json:"grade,omitempty" db:"grade"`
	Feedback     *string    `json:"feedback,omitempty" db:"feedback"`
	GradedAt     *time.Time `json:"gradedAt,omitempty" db:"graded_at"`
	GradedBy     *int64     `json:"gradedBy,omitempty" db:"graded_by"`
}
