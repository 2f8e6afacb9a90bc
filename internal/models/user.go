// Package models defines the data types exchanged with the Leish backend
// and persisted locally on the device.
package models

// User is the account record as the backend returns it. Identity is Id;
// the record is always replaced wholesale, never merged field by field.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AuthResponse is the payload of successful login and signup calls.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// LoginRequest carries credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest carries the fields for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// UpdateProfileRequest carries the replacement profile fields for
// PUT /users/me. The backend returns the full updated User.
type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"required"`
	Avatar string `json:"avatar,omitempty" validate:"omitempty,url"`
}
