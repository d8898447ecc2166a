package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/opticadev/optica-api/internal/application/service"
	"github.com/opticadev/optica-api/internal/config"
	"github.com/opticadev/optica-api/internal/infrastructure/database"
	"github.com/opticadev/optica-api/internal/infrastructure/repository"
	"github.com/opticadev/optica-api/internal/presentation/http/handler"
	"github.com/opticadev/optica-api/internal/presentation/http/routes"
	"github.com/opticadev/optica-api/pkg/logger"
	"github.com/opticadev/optica-api/pkg/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize token manager
	tokens := token.NewManager(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry, cfg.Auth.Issuer)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	orderRepo := repository.NewOrderRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	poLineRepo := repository.NewPurchaseOrderLineRepository(db)
	receivingRepo := repository.NewReceivingRepository(db)
	receivingLineRepo := repository.NewReceivingLineRepository(db)
	itemRepo := repository.NewSerializedItemRepository(db)
	stockLevelRepo := repository.NewStockLevelRepository(db)
	stockAdjustmentRepo := repository.NewStockAdjustmentRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	storeRepo := repository.NewStoreRepository(db)

	// Initialize services
	eligibilityService := service.NewEligibilityService(orderRepo, poLineRepo)
	poService := service.NewPurchaseOrderService(txManager, poRepo, poLineRepo, orderRepo, productRepo, supplierRepo, storeRepo, eligibilityService)
	stockService := service.NewStockService(txManager, stockLevelRepo, stockAdjustmentRepo, productRepo, storeRepo)
	receivingService := service.NewReceivingService(txManager, receivingRepo, receivingLineRepo, poRepo, poLineRepo, itemRepo, stockService)
	itemService := service.NewSerializedItemService(txManager, itemRepo, poLineRepo, storeRepo)
	catalogService := service.NewCatalogService(productRepo, supplierRepo, storeRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Eligibility:    handler.NewEligibilityHandler(eligibilityService),
		PurchaseOrder:  handler.NewPurchaseOrderHandler(poService),
		Receiving:      handler.NewReceivingHandler(receivingService),
		SerializedItem: handler.NewSerializedItemHandler(itemService),
		Stock:          handler.NewStockHandler(stockService),
		Catalog:        handler.NewCatalogHandler(catalogService),
	}

	// Setup router and start the server
	router := routes.Setup(handlers, &routes.Deps{
		Tokens: tokens,
		Cfg:    cfg,
		Logger: log,
	})

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
