package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/dto"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// staffLookup contrato mínimo para verificar operadores; lo implementa repository.UserRepository.
type staffLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// RequireStaff verifica que el operador del token exista. Debe usarse DESPUÉS de AuthMiddleware.
// El rol guardado reemplaza al del token, así un cambio de rol aplica sin reemitir tokens.
//   - 401 UNKNOWN_STAFF → el usuario no existe.
//   - 503 Service Unavailable → fallo al consultar el store.
func RequireStaff(users staffLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "STAFF_CHECK_FAILED",
				Message: "no se pudo verificar el operador, intente más tarde",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_STAFF",
				Message: "operador no registrado",
			})
		}

		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}
