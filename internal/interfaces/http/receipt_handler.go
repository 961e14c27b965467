package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

// ReceiptRenderer genera el PDF de una orden confirmada.
type ReceiptRenderer interface {
	GenerateReceipt(ctx context.Context, detail *checkout.OrderDetail, names map[string]string) ([]byte, error)
}

// ReceiptHandler descarga del recibo en PDF.
type ReceiptHandler struct {
	orders      *checkout.OrderQuery
	productRepo repository.ProductRepository
	renderer    ReceiptRenderer
}

func NewReceiptHandler(orders *checkout.OrderQuery, productRepo repository.ProductRepository, renderer ReceiptRenderer) *ReceiptHandler {
	return &ReceiptHandler{orders: orders, productRepo: productRepo, renderer: renderer}
}

// Receipt recibo de la orden en PDF (desglose CGST/SGST): GET /api/orders/:id/receipt.
func (h *ReceiptHandler) Receipt(c *fiber.Ctx) error {
	ctx := c.UserContext()
	detail, err := h.orders.GetOrder(ctx, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	names := make(map[string]string, len(detail.Lines))
	for _, l := range detail.Lines {
		if _, ok := names[l.Item.ProductID]; ok {
			continue
		}
		p, err := h.productRepo.GetByID(ctx, l.Item.ProductID)
		if err != nil {
			return writeError(c, err)
		}
		if p != nil {
			names[p.ID] = p.Name
		}
	}
	out, err := h.renderer.GenerateReceipt(ctx, detail, names)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, detail.Order.ID))
	return c.Send(out)
}
