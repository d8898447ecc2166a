package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opticadev/optica-api/internal/config"
	"github.com/opticadev/optica-api/internal/presentation/http/handler"
	"github.com/opticadev/optica-api/internal/presentation/http/middleware"
	"github.com/opticadev/optica-api/pkg/token"
	"github.com/rs/zerolog"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Eligibility    *handler.EligibilityHandler
	PurchaseOrder  *handler.PurchaseOrderHandler
	Receiving      *handler.ReceivingHandler
	SerializedItem *handler.SerializedItemHandler
	Stock          *handler.StockHandler
	Catalog        *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Tokens *token.Manager
	Cfg    *config.Config
	Logger zerolog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Tokens))

		// Per-store rate limiter
		rateLimiter := middleware.NewStoreRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.BurstSize,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Purchasable order lookup
	protected.GET("/orders/purchasable", h.Eligibility.ListPurchasable)

	// Purchase orders
	purchaseOrders := protected.Group("/purchase-orders")
	{
		purchaseOrders.POST("", h.PurchaseOrder.Create)
		purchaseOrders.GET("", h.PurchaseOrder.List)
		purchaseOrders.GET("/:id", h.PurchaseOrder.Get)
		purchaseOrders.POST("/:id/send", h.PurchaseOrder.Send)
		purchaseOrders.PATCH("/:id/status", h.PurchaseOrder.UpdateStatus)
		purchaseOrders.GET("/:id/receiving-target", h.Receiving.Target)
		purchaseOrders.GET("/:id/receivings", h.Receiving.History)
	}

	// Purchase order lines
	protected.GET("/purchase-order-lines/:id/minted-count", h.SerializedItem.MintedCount)

	// Receivings
	receivings := protected.Group("/receivings")
	{
		receivings.POST("", h.Receiving.Create)
		receivings.GET("/pending", h.Receiving.Pending)
		receivings.GET("/:id", h.Receiving.Get)
	}
	protected.PATCH("/receiving-lines/:id/quality", h.Receiving.UpdateQualityStatus)

	// Serialized items
	serializedItems := protected.Group("/serialized-items")
	{
		serializedItems.POST("/mint", h.SerializedItem.Mint)
		serializedItems.GET("", h.SerializedItem.List)
		serializedItems.GET("/:serial", h.SerializedItem.GetBySerial)
	}

	// Stock
	protected.POST("/stock/adjustments", h.Stock.Adjust)
	protected.GET("/stock-levels/:id/adjustments", h.Stock.AdjustmentHistory)

	// Stores and their inventory views
	stores := protected.Group("/stores")
	{
		stores.GET("", h.Catalog.ListStores)
		stores.GET("/:id", h.Catalog.GetStore)
		stores.GET("/:id/stock", h.Stock.Levels)
		stores.GET("/:id/stock/alerts", h.Stock.Alerts)
		stores.GET("/:id/stock/suggestions", h.Stock.Suggestions)
		stores.GET("/:id/serialized-summary", h.SerializedItem.StoreSummary)
	}

	// Catalog masters
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
	}
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Catalog.ListSuppliers)
		suppliers.GET("/:id", h.Catalog.GetSupplier)
	}
}
