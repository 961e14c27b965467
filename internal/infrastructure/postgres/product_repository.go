package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, barcode, name, category_id, price, cost_price, gst_rate, unit, stock_qty, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p           entity.Product
		categoryID  *string
		price, cost decimal.Decimal
	)
	if err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &categoryID, &price, &cost, &p.GSTRate,
		&p.Unit, &p.StockQty, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID = derefString(categoryID)
	p.Price = money.FromDecimal(price)
	p.CostPrice = money.FromDecimal(cost)
	return &p, nil
}

// Create persiste un nuevo producto. SKU o barcode repetido devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.SKU, p.Barcode, p.Name, nullIfEmpty(p.CategoryID),
		p.Price.Decimal(), p.CostPrice.Decimal(), p.GSTRate, p.Unit, p.StockQty,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s: %w", p.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateCatalog actualiza los datos de catálogo sin tocar stock_qty.
func (r *ProductRepo) UpdateCatalog(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		UPDATE products
		SET barcode = $2, name = $3, category_id = $4, price = $5, cost_price = $6,
		    gst_rate = $7, unit = $8, updated_at = now()
		WHERE id = $1
		RETURNING stock_qty, updated_at`,
		p.ID, p.Barcode, p.Name, nullIfEmpty(p.CategoryID),
		p.Price.Decimal(), p.CostPrice.Decimal(), p.GSTRate, p.Unit,
	).Scan(&p.StockQty, &p.UpdatedAt)
	if err != nil {
		if isMissing(err) {
			return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s: %w", p.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode búsqueda exacta por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by barcode", `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetBySKU búsqueda exacta por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.getOne(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	if err != nil && isConcurrencyFailure(err) {
		return nil, &domain.InsufficientStockError{ProductID: id, Conflict: true}
	}
	return p, err
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateStock suma delta solo si el stock resultante no es negativo. Sin fila afectada ok=false.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, delta int) (int, bool, error) {
	var newQty int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock_qty = stock_qty + $2, updated_at = now()
		WHERE id = $1 AND stock_qty + $2 >= 0
		RETURNING stock_qty`, id, delta,
	).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		if isConcurrencyFailure(err) {
			return 0, false, &domain.InsufficientStockError{ProductID: id, Requested: -delta, Conflict: true}
		}
		return 0, false, fmt.Errorf("update stock: %w", err)
	}
	return newQty, true, nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
