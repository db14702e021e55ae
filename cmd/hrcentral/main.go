package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hrcentral/internal/api"
	"hrcentral/internal/api/handlers"
	"hrcentral/internal/knowledge"
	"hrcentral/internal/repository"
	"hrcentral/internal/service"
	"hrcentral/pkg/auth"
	"hrcentral/pkg/config"
	"hrcentral/pkg/logger"
	"hrcentral/pkg/postgres"

	"go.uber.org/zap"
)

// @title HRCentral API
// @version 1.0
// @description Role-based business dashboards with a RAG chat assistant
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@hrcentral.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting HRCentral service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	salesRepo := repository.NewSalesRepository(db, appLogger)
	mfgRepo := repository.NewManufacturingRepository(db, appLogger)
	fieldRepo := repository.NewFieldRepository(db, appLogger)
	employeeRepo := repository.NewEmployeeRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(employeeRepo, jwtManager, appLogger)

	embeddingService := service.NewEmbeddingService(&cfg.RAG, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	retrievalService := service.NewRetrievalService(
		knowledge.Entries(),
		embeddingService,
		salesRepo,
		mfgRepo,
		fieldRepo,
		employeeRepo,
		&cfg.RAG,
		appLogger,
	)
	chatService := service.NewChatService(retrievalService, llmService, appLogger)
	dashboardService := service.NewDashboardService(salesRepo, mfgRepo, fieldRepo, employeeRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, dashboardHandler, chatHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
