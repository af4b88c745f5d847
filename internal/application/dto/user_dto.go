package dto

import "github.com/tu-usuario/taller-flota/internal/domain/entity"

// TokenResponse respuesta de POST /api/v1/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // siempre "bearer"
}

// UserResponse representación del usuario autenticado (GET /api/v1/users/me).
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Disabled bool   `json:"disabled"`
}

// UserToResponse mapea la entidad al DTO de salida (sin hash de contraseña).
func UserToResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Disabled: u.Disabled,
	}
}
