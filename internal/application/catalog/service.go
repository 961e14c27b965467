package catalog

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

const (
	exportPageSize   = 500
	initialStockNote = "Stock inicial"
)

// StockRefiller entrada de stock con su log (implementada por inventory.Ledger).
type StockRefiller interface {
	Refill(ctx context.Context, productID string, qty int, staffID, note string) (*entity.Product, error)
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`

	// StockIgnored productos existentes cuyo stock_qty del archivo no se aplicó.
	StockIgnored int `json:"stock_ignored"`
}

// Service importación y exportación del catálogo.
type Service struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	stock        StockRefiller
	log          *logger.Logger
}

func NewService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, stock StockRefiller, log *logger.Logger) *Service {
	return &Service{productRepo: productRepo, categoryRepo: categoryRepo, stock: stock, log: log}
}

// Import crea los SKU nuevos y actualiza los datos de catálogo de los existentes.
// El stock de un producto nuevo entra como reposición (queda en el ledger); el de un producto
// existente no se toca, las correcciones van por Adjust.
func (s *Service) Import(ctx context.Context, rows []Row, staffID string) (*ImportResult, error) {
	if staffID == "" {
		return nil, domain.Invalid("staff_id", "requerido")
	}
	res := &ImportResult{}
	categories := map[string]string{}
	for _, row := range rows {
		categoryID, ok := categories[row.Category]
		if !ok {
			c, err := s.categoryRepo.GetOrCreate(ctx, row.Category)
			if err != nil {
				return res, err
			}
			categoryID = c.ID
			categories[row.Category] = categoryID
		}

		existing, err := s.productRepo.GetBySKU(ctx, row.SKU)
		if err != nil {
			return res, err
		}
		if existing != nil {
			if row.Barcode != "" {
				b := row.Barcode
				existing.Barcode = &b
			}
			existing.Name = row.Name
			existing.CategoryID = categoryID
			existing.Price = row.Price
			existing.CostPrice = row.CostPrice
			existing.GSTRate = row.GSTRate
			existing.Unit = row.Unit
			if err := s.productRepo.UpdateCatalog(ctx, existing); err != nil {
				return res, err
			}
			res.Updated++
			if row.StockQty != existing.StockQty {
				res.StockIgnored++
			}
			continue
		}

		p := &entity.Product{
			ID:         uuid.New().String(),
			SKU:        row.SKU,
			Name:       row.Name,
			CategoryID: categoryID,
			Price:      row.Price,
			CostPrice:  row.CostPrice,
			GSTRate:    row.GSTRate,
			Unit:       row.Unit,
		}
		if row.Barcode != "" {
			b := row.Barcode
			p.Barcode = &b
		}
		if err := s.productRepo.Create(ctx, p); err != nil {
			return res, err
		}
		if row.StockQty > 0 {
			if _, err := s.stock.Refill(ctx, p.ID, row.StockQty, staffID, initialStockNote); err != nil {
				return res, err
			}
		}
		res.Created++
	}
	s.log.Info().
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("stock_ignored", res.StockIgnored).
		Str("staff_id", staffID).
		Msg("catálogo importado")
	return res, nil
}

// ImportCSV atajo de ReadCSV + Import.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, charset, staffID string) (*ImportResult, error) {
	rows, err := ReadCSV(r, charset)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, rows, staffID)
}

// Export escribe todo el catálogo como CSV.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var rows []Row
	for offset := 0; ; offset += exportPageSize {
		products, err := s.productRepo.List(ctx, exportPageSize, offset)
		if err != nil {
			return err
		}
		for _, p := range products {
			category := names[p.CategoryID]
			if category == "" {
				category = defaultCategory
			}
			rows = append(rows, Row{
				SKU:       p.SKU,
				Barcode:   p.BarcodeValue(),
				Name:      p.Name,
				Category:  category,
				Price:     p.Price,
				CostPrice: p.CostPrice,
				GSTRate:   p.GSTRate,
				Unit:      p.Unit,
				StockQty:  p.StockQty,
			})
		}
		if len(products) < exportPageSize {
			break
		}
	}
	return WriteCSV(w, rows)
}
