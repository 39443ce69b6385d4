package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/panastock-api/internal/application/analytics"
	"github.com/jhoicas/panastock-api/internal/application/auth"
	"github.com/jhoicas/panastock-api/internal/application/billing"
	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/panastock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/panastock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/panastock-api/internal/interfaces/http"
	"github.com/jhoicas/panastock-api/pkg/config"
	"github.com/jhoicas/panastock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Zona horaria de la panadería: corta los días y meses de la analítica.
	loc := time.Local
	if cfg.App.Timezone != "" {
		l, err := time.LoadLocation(cfg.App.Timezone)
		if err != nil {
			log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("timezone inválida")
		}
		loc = l
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo)

	registerMovementUC := movement.NewRegisterMovementUseCase(txRunner, productRepo, departmentRepo)
	listMovementsUC := movement.NewListMovementsUseCase(movementRepo, loc)
	deleteMovementUC := movement.NewDeleteMovementUseCase(txRunner)
	usageAnalyticsUC := appanalytics.NewUsageAnalyticsUseCase(productRepo, movementRepo, loc)

	customerUC := billing.NewCustomerUseCase(customerRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, registerMovementUC,
		productRepo, departmentRepo, customerRepo, invoiceRepo,
	)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PanaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		DepartmentUC:     departmentUC,
		RegisterMovement: registerMovementUC,
		ListMovements:    listMovementsUC,
		DeleteMovement:   deleteMovementUC,
		UsageAnalytics:   usageAnalyticsUC,
		CustomerUC:       customerUC,
		CreateInvoice:    createInvoiceUC,
		InvoicePDF:       invoicePDFUC,
		JWTSecret:        cfg.JWT.Secret,
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
