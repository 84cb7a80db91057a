package request

import (
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (r RegisterRequest) ToInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     entities.Role(r.Role),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyLoginCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type SwitchRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
