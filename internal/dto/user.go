package dto

import (
	"time"

	"github.com/yukikurage/taskgraph-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// SessionResponse is returned by the session endpoints
type SessionResponse struct {
	Username string  `json:"username"`
	User     UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
