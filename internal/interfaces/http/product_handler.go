package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/application/catalog"
	"github.com/jhoicas/grocery-pos/internal/application/dto"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/pkg/validator"
)

// ProductHandler consulta del catálogo e importación/exportación CSV (protegido).
type ProductHandler struct {
	productRepo repository.ProductRepository
	carts       *cart.Manager
	catalog     *catalog.Service
}

// NewProductHandler construye el handler.
func NewProductHandler(productRepo repository.ProductRepository, carts *cart.Manager, catalogSvc *catalog.Service) *ProductHandler {
	return &ProductHandler{productRepo: productRepo, carts: carts, catalog: catalogSvc}
}

// GetByID obtener producto por ID: GET /api/products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	p, err := h.productRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Lookup buscar producto por código (barcode, luego SKU): GET /api/products/lookup.
func (h *ProductHandler) Lookup(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	p, err := h.carts.LookupCode(c.UserContext(), code)
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código no encontrado"})
	}
	return c.JSON(dto.NewProductResponse(p))
}

// List listar productos: GET /api/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	if errs := validator.Struct(page); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Join(errs)})
	}
	page.DefaultPage()
	products, err := h.productRepo.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		out.Items = append(out.Items, dto.NewProductResponse(p))
	}
	return c.JSON(out)
}

// Export exportar catálogo en CSV: GET /api/products/export.
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.catalog.Export(c.UserContext(), &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(buf.Bytes())
}

// Import importar catálogo desde CSV (solo admin): POST /api/products/import.
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	var body io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
		}
		defer f.Close()
		body = f
	} else {
		if len(c.Body()) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo requerido"})
		}
		body = bytes.NewReader(c.Body())
	}
	res, err := h.catalog.ImportCSV(c.UserContext(), body, c.Query("charset"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
