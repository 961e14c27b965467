package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/application/dto"
)

// CartHandler carrito del operador autenticado; la sesión es su user_id.
type CartHandler struct {
	carts *cart.Manager
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get carrito actual con totales estimados: GET /api/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	preview, err := h.carts.Preview(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCartResponse(preview))
}

// AddLine agregar línea (código escaneado o producto): POST /api/cart/lines.
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if !parseBody(c, &in) {
		return nil
	}
	ctx := c.UserContext()
	updated, err := h.carts.AddLine(ctx, GetUserID(c), cart.AddLineInput{
		Token:       in.Token,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		DiscountPct: in.DiscountPct,
	})
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusCreated, updated)
}

// RemoveLine quitar línea por posición: DELETE /api/cart/lines/:index.
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index", -1)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index inválido"})
	}
	updated, err := h.carts.RemoveLine(c.UserContext(), GetUserID(c), index)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK, updated)
}

// SetDiscount fijar descuento de orden: PUT /api/cart/discount.
func (h *CartHandler) SetDiscount(c *fiber.Ctx) error {
	var in dto.SetDiscountRequest
	if !parseBody(c, &in) {
		return nil
	}
	updated, err := h.carts.SetOrderDiscount(c.UserContext(), GetUserID(c), in.OrderDiscountPct)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK, updated)
}

// Clear vaciar carrito: DELETE /api/cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.carts.Clear(c.UserContext(), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) respond(c *fiber.Ctx, status int, updated *cart.Cart) error {
	preview, err := h.carts.PreviewCart(c.UserContext(), updated)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(dto.NewCartResponse(preview))
}
