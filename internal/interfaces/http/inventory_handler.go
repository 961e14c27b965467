package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/dto"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// InventoryHandler reposición, ajustes e historial de stock (protegido).
type InventoryHandler struct {
	ledger *inventory.Ledger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Refill reponer stock: POST /api/inventory/refill.
func (h *InventoryHandler) Refill(c *fiber.Ctx) error {
	var in dto.RefillRequest
	if !parseBody(c, &in) {
		return nil
	}
	var (
		p   *entity.Product
		err error
	)
	if in.UnitCost != nil {
		p, err = h.ledger.RefillAtCost(c.UserContext(), in.ProductID, in.Quantity, *in.UnitCost, GetUserID(c), in.Note)
	} else {
		p, err = h.ledger.Refill(c.UserContext(), in.ProductID, in.Quantity, GetUserID(c), in.Note)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockResponse(p))
}

// Adjust ajuste de stock con signo (solo admin): POST /api/inventory/adjust.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if !parseBody(c, &in) {
		return nil
	}
	p, err := h.ledger.Adjust(c.UserContext(), in.ProductID, in.ChangeQty, GetUserID(c), in.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockResponse(p))
}

// History movimientos de un producto (más reciente primero): GET /api/inventory/:product_id/logs.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	entries, err := h.ledger.History(c.UserContext(), c.Params("product_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryLogResponses(entries))
}
