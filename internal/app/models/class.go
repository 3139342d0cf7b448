package models

import "time"

// Class represents a lab class, the root of the content hierarchy.
type Class struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Enrollment links a praktikan to a class.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	ClassID    int64     `json:"classId" db:"class_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
