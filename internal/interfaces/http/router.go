package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/auth"
	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/application/catalog"
	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/application/reports"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Carts       *cart.Manager
	Catalog     *catalog.Service
	Committer   *checkout.Committer
	Orders      *checkout.OrderQuery
	Ledger      *inventory.Ledger
	Auth        *auth.AuthUseCase
	Reports     *reports.Service
	Receipts    ReceiptRenderer
	JWTSecret   string
}

// Router registra las rutas de la API. Salvo el login, todas requieren Bearer Token de un
// operador registrado.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.Auth)
	// registrado antes del grupo: Fiber ejecuta en orden de registro y el login no llama a Next
	app.Post("/api/auth/login", authHandler.Login)

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireStaff(deps.UserRepo))

	api.Post("/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductRepo, deps.Carts, deps.Catalog)
	products.Get("/", productHandler.List)
	products.Get("/lookup", productHandler.Lookup)
	products.Get("/export", productHandler.Export)
	products.Post("/import", RequireRole(entity.RoleAdmin), productHandler.Import)
	products.Get("/:id", productHandler.GetByID)

	// Cart (uno por operador)
	carts := api.Group("/cart")
	cartHandler := NewCartHandler(deps.Carts)
	carts.Get("/", cartHandler.Get)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/lines", cartHandler.AddLine)
	carts.Delete("/lines/:index", cartHandler.RemoveLine)
	carts.Put("/discount", cartHandler.SetDiscount)

	// Checkout y órdenes
	checkoutHandler := NewCheckoutHandler(deps.Carts, deps.Committer, deps.Orders)
	api.Post("/checkout", checkoutHandler.Checkout)
	orders := api.Group("/orders")
	orders.Get("/", checkoutHandler.ListOrders)
	orders.Get("/:id", checkoutHandler.GetOrder)
	orders.Get("/:id/receipt", NewReceiptHandler(deps.Orders, deps.ProductRepo, deps.Receipts).Receipt)

	// Inventory: reposición para cualquier operador, ajustes solo admin
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv.Post("/refill", RequireRole(entity.RoleAdmin, entity.RoleStaff), inventoryHandler.Refill)
	inv.Post("/adjust", RequireRole(entity.RoleAdmin), inventoryHandler.Adjust)
	inv.Get("/:product_id/logs", inventoryHandler.History)

	// Reportes: dashboard para todos, diario y mensual para admin y staff
	rep := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	rep.Get("/dashboard", reportHandler.Dashboard)
	rep.Get("/daily", RequireRole(entity.RoleAdmin, entity.RoleStaff), reportHandler.Daily)
	rep.Get("/monthly", RequireRole(entity.RoleAdmin, entity.RoleStaff), reportHandler.Monthly)
}
