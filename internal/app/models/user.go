package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"aslab@lab.edu"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	FullName  string    `json:"fullName" db:"full_name" example:"Jane Doe"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"PRAKTIKAN"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAslab reports whether the user holds the lab assistant role.
func (u *User) IsAslab() bool {
	return u.RoleType == RoleAslab
}
