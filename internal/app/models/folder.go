package models

import "time"

// ModuleFolder groups modules within one class. Display order is
// (order_index asc, created_at asc); order_index is user controlled and
// created_at is the deterministic tie break.
type ModuleFolder struct {
	ID         int64     `json:"id" db:"id"`
	ClassID    int64     `json:"classId" db:"class_id"`
	Title      string    `json:"title" db:"title"`
	OrderIndex int       `json:"orderIndex" db:"order_index"`
	CreatedBy  int64     `json:"createdBy" db:"created_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
