package dto

import "anoa.com/leadercircle/internal/entity"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates an account. Role defaults to APPLICANT on the server.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	FullName string      `json:"fullName" validate:"required,max=100"`
	Role     entity.Role `json:"role,omitempty" validate:"omitempty,oneof=APPLICANT PARTICIPANT ALUMNA MENTOR"`
	CohortID *string     `json:"cohortId,omitempty"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn,omitempty"`
	User      entity.User `json:"user"`
}
