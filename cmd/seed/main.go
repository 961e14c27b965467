// seed crea el esquema y carga el catálogo de demostración (admin/admin123 + MILK500, RICE5, DETER1).
//
// Uso: go run ./cmd/seed [catalogo.csv] [charset]
// Si se indica un CSV (sku,barcode,name,category,price,cost_price,gst_rate,unit,stock_qty) se
// importa además del catálogo demo. charset: utf-8 (default), latin1, windows-1252.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/grocery-pos/internal/application/auth"
	"github.com/jhoicas/grocery-pos/internal/application/catalog"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/grocery-pos/pkg/config"
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})
	if !cfg.DB.Enabled() {
		log.Fatal().Msg("DATABASE_URL o DB_HOST requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	products := postgres.NewProductRepository(pool)
	ledger := inventory.NewLedger(postgres.NewTxRunner(pool), products, postgres.NewInventoryLogRepository(pool), log)
	svc := catalog.NewService(products, postgres.NewCategoryRepository(pool), ledger, log)

	users := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	admin, res, err := svc.SeedDemo(ctx, users)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de demostración")
	}
	log.Info().Str("admin_id", admin.ID).Int("products", res.Created).Msg("catálogo de demostración")

	if len(os.Args) < 2 {
		return
	}
	charset := ""
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	imported, err := svc.ImportCSV(ctx, f, charset, admin.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("importar CSV")
	}
	log.Info().
		Str("file", os.Args[1]).
		Int("created", imported.Created).
		Int("updated", imported.Updated).
		Msg("catálogo importado")
}
