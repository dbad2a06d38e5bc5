package dto

import (
	"time"

	"github.com/rishanreddy/habitmind/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MeResponse is the current user together with their habit stats
type MeResponse struct {
	User  UserDTO  `json:"user"`
	Stats StatsDTO `json:"stats"`
}

// TokenResponse carries a bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToUserDTO converts a User model to UserDTO. imageURL may be empty.
func ToUserDTO(user models.User, imageURL string) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ImageURL:  imageURL,
		CreatedAt: user.CreatedAt,
	}
}
