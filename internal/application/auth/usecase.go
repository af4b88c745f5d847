package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/taller-flota/internal/application/dto"
	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
	"github.com/tu-usuario/taller-flota/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y perfil propio.
// La emisión y verificación del token es un colaborador externo (pkg/jwt);
// el resto del sistema asume un caller ya autenticado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales (bcrypt) y emite un token de acceso.
// Cualquier fallo de credenciales devuelve ErrUnauthorized sin distinguir
// entre usuario inexistente, deshabilitado o contraseña incorrecta.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username y password son requeridos: %w", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled {
		return nil, fmt.Errorf("usuario o contraseña incorrectos: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("usuario o contraseña incorrectos: %w", domain.ErrUnauthorized)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s no encontrado: %w", username, domain.ErrNotFound)
	}
	return dto.UserToResponse(user), nil
}
