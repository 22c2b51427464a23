package app

import (
	"log/slog"
	"time"

	"gudang/internal/config"
	"gudang/internal/handlers"
	"gudang/internal/middleware"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Services groups the services built by NewServices.
type Services struct {
	Categories       *services.CategoryService
	Suppliers        *services.SupplierService
	Products         *services.ProductService
	Sales            *services.SaleService
	StockAdjustments *services.StockAdjustmentService
	Reports          *services.ReportService
	Export           *services.ExportService
	Auth             *services.AuthService
}

// NewServices builds every service over db. publisher may be nil.
func NewServices(cfg *config.Config, db *gorm.DB, log *slog.Logger, publisher services.StockEventPublisher) *Services {
	store := repositories.NewStore(db)
	return &Services{
		Categories:       services.NewCategoryService(store, log),
		Suppliers:        services.NewSupplierService(store, log),
		Products:         services.NewProductService(store, log),
		Sales:            services.NewSaleService(store, cfg.StockUpdatePolicy, publisher, log),
		StockAdjustments: services.NewStockAdjustmentService(store, cfg.StockUpdatePolicy, publisher, log),
		Reports:          services.NewReportService(store, log),
		Export:           services.NewExportService(store, log),
		Auth:             services.NewAuthService(store.Operators(), cfg.JWTSecret, cfg.TokenTTL, log),
	}
}

// New builds the Fiber app with every route registered.
func New(cfg *config.Config, db *gorm.DB, log *slog.Logger, publisher services.StockEventPublisher) *fiber.App {
	svc := NewServices(cfg, db, log, publisher)

	app := fiber.New(fiber.Config{
		AppName:      "gudang",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log.With(slog.String("component", "http"))))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": cfg.DatabaseDriver,
		})
	})

	api := app.Group("/api")

	// Authentication routes (public)
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api)

	protected := api
	if cfg.AuthEnabled {
		protected = api.Group("", middleware.AuthRequired(svc.Auth, log))
	}

	handlers.NewCategoryHandler(svc.Categories).RegisterRoutes(protected)
	handlers.NewSupplierHandler(svc.Suppliers).RegisterRoutes(protected)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(protected)
	handlers.NewSaleHandler(svc.Sales, svc.Export).RegisterRoutes(protected)
	handlers.NewStockAdjustmentHandler(svc.StockAdjustments).RegisterRoutes(protected)
	handlers.NewReportHandler(svc.Reports).RegisterRoutes(protected)

	return app
}
