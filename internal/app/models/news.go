package models

import "time"

// NewsLink is the optional polymorphic reference from a news item to a
// class, module or assignment. Representing both fields together keeps the
// both-or-neither rule structural.
type NewsLink struct {
	Type LinkedType `json:"type" db:"linked_type"`
	ID   int64      `json:"id" db:"linked_id"`
}

// News is an announcement, optionally linked to another entity.
type News struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"` // markdown
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Link      *NewsLink `json:"link,omitempty"`
}
