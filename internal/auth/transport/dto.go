package transport

import "github.com/google/uuid"

// SignInRequest carries login credentials.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName *string   `json:"full_name,omitempty"`
	Role     string    `json:"role"`
}

// SignInResponse is the successful login payload.
type SignInResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   string       `json:"expires_at"`
	User        UserResponse `json:"user"`
}
