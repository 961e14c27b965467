package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/auth"
	"github.com/jhoicas/grocery-pos/internal/application/dto"
)

// AuthHandler login y alta de operadores.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login iniciar sesión: POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewLoginResponse(out))
}

// CreateUser crear operador (solo admin): POST /api/users.
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if !parseBody(c, &in) {
		return nil
	}
	user, err := h.uc.CreateUser(c.UserContext(), in.Username, in.Password, in.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}
