package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"adventureworks/internal/catalog"
	"adventureworks/internal/handlers"
	"adventureworks/internal/middleware"
	"adventureworks/internal/models"
	"adventureworks/internal/repositories"
	"adventureworks/internal/services"
	"adventureworks/pkg/events"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("STORE_DRIVER", "json")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("EMAIL_PORT", 587)
	viper.SetDefault("EMAIL_USER", "")
	viper.SetDefault("EMAIL_PASS", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	// --- Stores ---
	userRepo, orderRepo, err := buildStores()
	if err != nil {
		log.Fatalf("Failed to initialize stores: %v", err)
	}
	productRepo := repositories.NewMemoryProductRepository(catalog.Products, catalog.Categories)

	// --- Order events (optional) ---
	var publisher services.OrderEventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		pub, err := events.NewPublisher(events.Config{URL: url})
		if err != nil {
			log.Printf("Order events disabled: %v", err)
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"), viper.GetString("GOOGLE_CLIENT_ID"))
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	invoiceService := services.NewInvoiceService()
	mailService := services.NewMailService(services.MailConfig{
		Host: viper.GetString("EMAIL_HOST"),
		Port: viper.GetInt("EMAIL_PORT"),
		User: viper.GetString("EMAIL_USER"),
		Pass: viper.GetString("EMAIL_PASS"),
	})

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService, invoiceService, mailService)
	adminHandler := handlers.NewAdminHandler(authService, orderService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Public routes
	productHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)

	// Authenticated routes
	authed := api.Group("", middleware.AuthRequired(authService))
	authed.Get("/me", authHandler.HandleMe)
	orderHandler.RegisterRoutes(authed)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired(authService))
	adminHandler.RegisterRoutes(admin)

	// --- Start HTTP server with graceful shutdown ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// buildStores selects the persistence backend: flat JSON files (the
// default, serialized per store), or a transactional store through
// GORM when STORE_DRIVER is sqlite or postgres.
func buildStores() (repositories.UserRepository, repositories.OrderRepository, error) {
	driver := viper.GetString("STORE_DRIVER")
	dataDir := viper.GetString("DATA_DIR")

	switch driver {
	case "json":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
		}
		userRepo := repositories.NewJSONUserRepository(filepath.Join(dataDir, "users.json"))
		orderRepo := repositories.NewJSONOrderRepository(filepath.Join(dataDir, "orders.json"))
		return userRepo, orderRepo, nil

	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
		}
		db, err := gorm.Open(sqlite.Open(filepath.Join(dataDir, "store.db")), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return buildGORMStores(db)

	case "postgres":
		db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return buildGORMStores(db)

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER: %s", driver)
	}
}

func buildGORMStores(db *gorm.DB) (repositories.UserRepository, repositories.OrderRepository, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return repositories.NewGORMUserRepository(db), repositories.NewGORMOrderRepository(db), nil
}
