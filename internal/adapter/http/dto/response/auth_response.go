package response

import (
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func FromLoginResult(r usecase.LoginResult) LoginResponse {
	return LoginResponse{Token: r.Token, ExpiresAt: r.ExpiresAt, User: FromUser(r.User)}
}

type MessageResponse struct {
	Message string `json:"message"`
}
