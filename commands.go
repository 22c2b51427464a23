package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gudang/internal/app"
	"gudang/internal/config"
	"gudang/internal/logger"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg, log, cfg.AutoMigrate)
		if err != nil {
			return err
		}

		// A nil interface, not a nil *rabbitmq.Client, disables publishing.
		var publisher services.StockEventPublisher
		if cfg.RabbitMQURL != "" {
			mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
			if err != nil {
				return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
			}
			defer mqClient.Close()
			publisher = mqClient
		} else {
			log.Info("RABBITMQ_URL not set, stock movement events are disabled")
		}

		server := app.New(cfg, db, log, publisher)

		// Graceful shutdown handling
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		listenErr := make(chan error, 1)
		go func() {
			log.Info("starting server", slog.String("addr", cfg.AppPort))
			listenErr <- server.Listen(cfg.AppPort)
		}()

		select {
		case err := <-listenErr:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}

		log.Info("shutting down server")
		if err := server.Shutdown(); err != nil {
			log.Error("error during shutdown", slog.String("error", err.Error()))
		}
		log.Info("server gracefully stopped")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if _, err := openDatabase(cfg, log, true); err != nil {
			return err
		}
		log.Info("migration complete")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo category, supplier and products into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg, log, true)
		if err != nil {
			return err
		}
		return seed(cmd.Context(), app.NewServices(cfg, db, log, nil), log)
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Log stock movement events from the RabbitMQ queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if cfg.RabbitMQURL == "" {
			return errors.New("RABBITMQ_URL is required to listen for stock movements")
		}

		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info("listening for stock movements", slog.String("queue", cfg.RabbitMQQueue))
		return mqClient.ConsumeStockMovements(ctx, func(event models.StockMovementEvent) error {
			log.Info("stock movement",
				slog.String("event_id", event.ID),
				slog.String("kind", event.Kind),
				slog.Uint64("product_id", uint64(event.ProductID)),
				slog.Int("delta", event.Delta),
				slog.Int("quantity_after", event.QuantityAfter),
			)
			return nil
		})
	},
}

// setup loads the configuration, applies the command line overrides and
// builds the logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if driverFlag != "" {
		cfg.DatabaseDriver = driverFlag
	}
	if dsnFlag != "" {
		cfg.DatabaseDSN = dsnFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}

func openDatabase(cfg *config.Config, log *slog.Logger, migrate bool) (*gorm.DB, error) {
	db, err := repositories.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := repositories.Migrate(db); err != nil {
			return nil, err
		}
		log.Info("database migrated", slog.String("driver", cfg.DatabaseDriver))
	}
	return db, nil
}

// seed populates an empty database through the services, so every row passes
// the same validation as API input.
func seed(ctx context.Context, svc *app.Services, log *slog.Logger) error {
	existing, err := svc.Categories.List(ctx, models.CategoryFilter{Pagination: models.Pagination{Page: 1, Size: 1}})
	if err != nil {
		return err
	}
	if existing.TotalCount > 0 {
		log.Info("database already has data, skipping seed")
		return nil
	}

	category, err := svc.Categories.Create(ctx, models.CategoryRequest{Name: "Beverages"})
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	supplier, err := svc.Suppliers.Create(ctx, models.SupplierRequest{Name: "Acme Trading", Phone: "0812345678"})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	products := []models.ProductCreateRequest{
		{Name: "Green Tea", Price: decimal.RequireFromString("3.50"), QuantityInStock: 40},
		{Name: "Espresso Beans", Price: decimal.RequireFromString("12.90"), QuantityInStock: 15},
		{Name: "Sparkling Water", Price: decimal.RequireFromString("1.25"), QuantityInStock: 3},
	}
	for _, req := range products {
		req.CategoryID = category.ID
		req.SupplierID = supplier.ID
		product, err := svc.Products.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", req.Name, err)
		}
		log.Info("seeded product", slog.String("name", product.Name), slog.Uint64("id", uint64(product.ID)))
	}
	return nil
}
