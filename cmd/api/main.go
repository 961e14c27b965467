package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/grocery-pos/internal/application/auth"
	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/application/catalog"
	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/application/reports"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/events"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/memory"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/grocery-pos/internal/interfaces/http"
	"github.com/jhoicas/grocery-pos/pkg/config"
	"github.com/jhoicas/grocery-pos/pkg/jwt"
	"github.com/jhoicas/grocery-pos/pkg/logger"
	"github.com/jhoicas/grocery-pos/pkg/tracing"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.Tracing.JaegerEndpoint != "" {
		tp, err := tracing.Init(cfg.App.Name, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			log.Warn().Err(err).Msg("tracing deshabilitado")
		} else {
			defer func() { _ = tp.Shutdown(context.Background()) }()
		}
	}

	be, err := openBackend(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer be.close()

	var cartStore cart.Store = memory.NewCartStore()
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		cartStore = redisstore.NewCartStore(rdb, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
	}

	var publisher checkout.EventPublisher = checkout.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer kafkaPub.Close()
		publisher = kafkaPub
	}

	ledger := inventory.NewLedger(be.inventoryTx, be.products, be.logs, log.Named("inventory"))
	cartMgr := cart.NewManager(cartStore, be.products, ledger, log.Named("cart"))
	committer := checkout.NewCommitter(be.checkoutTx, ledger, cartStore, publisher, log.Named("checkout"), cfg.Checkout.DefaultCustomerName)
	orderQuery := checkout.NewOrderQuery(be.orders, be.customers, cfg.Checkout.RecentOrdersLimit)
	catalogSvc := catalog.NewService(be.products, be.categories, ledger, log.Named("catalog"))
	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Named("auth"))
	storeLoc, _ := cfg.Store.Location() // validado en config.Load
	reportSvc := reports.NewService(be.orders, storeLoc)
	receipts := pdf.NewMarotoPDFGenerator(pdf.Store{
		Name:    cfg.Store.Name,
		Address: cfg.Store.Address,
		Phone:   cfg.Store.Phone,
		GSTIN:   cfg.Store.GSTIN,
	})

	if !be.persistent {
		seedInMemory(ctx, cfg, catalogSvc, authUC, log)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestMetrics())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Grocery POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductRepo: be.products,
		UserRepo:    be.users,
		Carts:       cartMgr,
		Catalog:     catalogSvc,
		Committer:   committer,
		Orders:      orderQuery,
		Ledger:      ledger,
		Auth:        authUC,
		Reports:     reportSvc,
		Receipts:    receipts,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedInMemory carga el catálogo de demostración y el admin (admin/admin123) en el store en
// memoria. En development además deja en el log un token del admin para probar la API.
func seedInMemory(ctx context.Context, cfg *config.Config, svc *catalog.Service, users catalog.UserProvisioner, log *logger.Logger) {
	admin, res, err := svc.SeedDemo(ctx, users)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de demostración")
	}
	log.Info().Int("products", res.Created).Str("admin_id", admin.ID).Msg("catálogo de demostración cargado")

	if cfg.App.Env != "development" || cfg.JWT.Secret == "" {
		return
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, admin.ID, admin.Role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Warn().Err(err).Msg("token de desarrollo")
		return
	}
	log.Info().Str("token", tok).Msg("token de desarrollo para el admin")
}
