package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/panastock-api/internal/application/analytics"
	"github.com/jhoicas/panastock-api/internal/application/auth"
	"github.com/jhoicas/panastock-api/internal/application/billing"
	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/application/usecase"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	DepartmentUC     *usecase.DepartmentUseCase
	RegisterMovement *movement.RegisterMovementUseCase
	ListMovements    *movement.ListMovementsUseCase
	DeleteMovement   *movement.DeleteMovementUseCase
	UsageAnalytics   *appanalytics.UsageAnalyticsUseCase
	CustomerUC       *billing.CustomerUseCase
	CreateInvoice    *billing.CreateInvoiceUseCase
	InvoicePDF       *billing.PDFUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Quien mueve stock: admin y panadero. Quien factura: admin y vendedor.
	movesStock := RequireRoles(entity.RoleAdmin, entity.RolePanadero)
	sells := RequireRoles(entity.RoleAdmin, entity.RoleVendedor)

	// Productos y su analítica de consumo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	analyticsHandler := NewAnalyticsHandler(deps.UsageAnalytics)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/usage-stats", analyticsHandler.UsageStats)
	products.Get("/:id/usage-analytics", analyticsHandler.UsageAnalytics)

	// Departamentos
	departments := protected.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Post("/", departmentHandler.Create)
	departments.Get("/", departmentHandler.List)

	// Movimientos de stock
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.ListMovements, deps.DeleteMovement)
	movements.Post("/", movesStock, movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Delete("/:id", movesStock, movementHandler.Delete)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Facturas
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	invoices.Post("/", sells, invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
