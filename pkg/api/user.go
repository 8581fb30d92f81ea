package api

import "time"

// User is an account managed through the admin endpoints.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	Sector      *Sector   `json:"sector,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
	SectorID    string `json:"sector_id,omitempty"`
}

// UpdateUserRequest changes account attributes. Nil fields are left untouched.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	IsAdmin     *bool   `json:"is_admin,omitempty"`
	SectorID    *string `json:"sector_id,omitempty"`
}

// ResetUserPasswordRequest sets a new password for an account (admin only).
type ResetUserPasswordRequest struct {
	NewPassword string `json:"new_password"`
}
