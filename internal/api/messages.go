package api

import "time"

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=200"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=STUDENT TEACHER"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the public view of an account. It never carries a password or
// password hash.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"fullName,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// GetProfileRequest is empty: the caller is identified by its token.
type GetProfileRequest struct{}

type LookupUserRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type UserResponse struct {
	User User `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
