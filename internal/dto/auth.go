package dto

import (
	"strings"

	"careconnect_web/internal/models"
)

type LoginForm struct {
	Email    string `form:"email" validate:"required,email" msg:"Please enter a valid email address"`
	Password string `form:"password" validate:"min=6" msg:"Password must be at least 6 characters"`
	Next     string `form:"next"`
}

func (f *LoginForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) ToRequest() LoginRequest {
	return LoginRequest{Email: f.Email, Password: f.Password}
}

type RegisterForm struct {
	FirstName string          `form:"firstName" validate:"required,max=50"`
	LastName  string          `form:"lastName" validate:"required,max=50"`
	Email     string          `form:"email" validate:"required,email" msg:"Please enter a valid email address"`
	Password  string          `form:"password" validate:"min=6" msg:"Password must be at least 6 characters"`
	Role      models.UserRole `form:"role" validate:"required,is-user-role"`
}

func (f *RegisterForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	if f.Role == "" {
		f.Role = models.UserRoleElder
	}
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      models.UserRole `json:"role"`
}

func (f RegisterForm) ToRequest() RegisterRequest {
	return RegisterRequest{
		Email:     f.Email,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Role:      f.Role,
	}
}
