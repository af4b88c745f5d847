package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-flota/internal/application/auth"
)

// AuthHandler maneja autenticación: emisión de token y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Obtener token de acceso
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Usuario"
// @Param        password  formData  string  true  "Contraseña"
// @Success      200  {object}  dto.TokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/token [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	// El cliente envía form-encoded (estilo OAuth2 password flow), no JSON.
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return badRequest(c, "username y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), username, password)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUsername(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
