// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/cardshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires the canonical route set for every resource
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupInventoryRoutes(rg, db, cfg)
	SetupPurchasingRoutes(rg, db, cfg)
	SetupSalesRoutes(rg, db, cfg)
	SetupCustomerRoutes(rg, db, cfg)
	SetupStorageRoutes(rg, db, cfg)
	SetupEventRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}
}

// SetupCatalogRoutes sets up category and supplier routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)

		protected := categories.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("", catalogHandler.CreateCategory)
			protected.DELETE("/:id", catalogHandler.DeleteCategory)
		}
	}

	suppliers := rg.Group("/suppliers")
	suppliers.Use(middleware.AuthMiddleware(cfg))
	{
		suppliers.GET("", catalogHandler.GetSuppliers)
		suppliers.POST("", catalogHandler.CreateSupplier)
		suppliers.DELETE("/:id", catalogHandler.DeleteSupplier)
	}
}

// SetupInventoryRoutes sets up inventory routes
func SetupInventoryRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)

	inv := rg.Group("/inventory")
	{
		// Public storefront view
		inv.GET("", inventoryHandler.GetItems)

		protected := inv.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/status", inventoryHandler.GetStatus)
			protected.POST("/add", inventoryHandler.AddItem)
			protected.PUT("/:id", inventoryHandler.UpdateItem)
			protected.DELETE("/:id", inventoryHandler.DeleteItem)
		}
	}
}

// SetupPurchasingRoutes sets up purchase order routes
func SetupPurchasingRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	purchasingHandler := handlers.NewPurchasingHandler(db, cfg)

	pos := rg.Group("/purchase-orders")
	pos.Use(middleware.AuthMiddleware(cfg))
	{
		pos.GET("", purchasingHandler.List)
		pos.POST("", purchasingHandler.Create)
		pos.GET("/:id", purchasingHandler.GetItems)
		pos.PUT("/:id/receive", purchasingHandler.Receive)
		pos.PUT("/:id/payment", purchasingHandler.RecordPayment)
	}
}

// SetupSalesRoutes sets up customer order routes
func SetupSalesRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	salesHandler := handlers.NewSalesHandler(db, cfg)

	sales := rg.Group("/sales")
	sales.Use(middleware.AuthMiddleware(cfg))
	{
		sales.POST("", salesHandler.Create)
		sales.GET("/history", salesHandler.History)
		sales.GET("/preorders", salesHandler.Preorders)
		sales.PUT("/:id/payment", salesHandler.RecordPayment)
	}
}

// SetupCustomerRoutes sets up customer routes
func SetupCustomerRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	customerHandler := handlers.NewCustomerHandler(db, cfg)

	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.GET("", customerHandler.List)
		customers.GET("/search", customerHandler.List)
		customers.POST("", customerHandler.Create)
		customers.DELETE("/:id", customerHandler.Delete)
		customers.GET("/:id/history", customerHandler.History)
		customers.GET("/:id/recent-events", customerHandler.RecentEvents)
	}
}

// SetupStorageRoutes sets up pack storage ledger routes
func SetupStorageRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	storageHandler := handlers.NewStorageHandler(db, cfg)

	storage := rg.Group("/storage")
	storage.Use(middleware.AuthMiddleware(cfg))
	{
		storage.GET("", storageHandler.GetBalances)
		storage.GET("/history/:customerId", storageHandler.GetHistory)
		storage.POST("/update", storageHandler.Update)
	}
}

// SetupEventRoutes sets up event routes
func SetupEventRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	eventHandler := handlers.NewEventHandler(db, cfg)

	events := rg.Group("/events")
	{
		events.GET("", eventHandler.List)

		protected := events.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("", eventHandler.Create)
			protected.POST("/:id/register", eventHandler.Register)
		}
	}
}
