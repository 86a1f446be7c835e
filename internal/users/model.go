package users

import "mikombo-backend/internal/models"

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,bcryptmax"`
	LastName  string `json:"nom" validate:"required,notblank"`
	FirstName string `json:"prenom" validate:"required,notblank"`
	Phone     string `json:"telephone" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}
