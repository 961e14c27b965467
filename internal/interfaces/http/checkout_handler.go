package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/application/dto"
)

// CheckoutHandler confirma el carrito del operador y expone las órdenes confirmadas.
type CheckoutHandler struct {
	carts     *cart.Manager
	committer *checkout.Committer
	orders    *checkout.OrderQuery
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(carts *cart.Manager, committer *checkout.Committer, orders *checkout.OrderQuery) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, committer: committer, orders: orders}
}

// Checkout confirmar el carrito como orden: POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	ctx := c.UserContext()
	staffID := GetUserID(c)

	current, err := h.carts.Get(ctx, staffID)
	if err != nil {
		return writeError(c, err)
	}
	order, err := h.committer.Checkout(ctx, current, checkout.Input{
		StaffID:       staffID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponseFromOrder(order))
}

// GetOrder obtener orden (factura con CGST/SGST): GET /api/orders/:id.
func (h *CheckoutHandler) GetOrder(c *fiber.Ctx) error {
	detail, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(detail))
}

// ListOrders órdenes recientes: GET /api/orders.
func (h *CheckoutHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListRecent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderSummaryResponses(orders))
}
