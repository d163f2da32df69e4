package main

import (
	"log"
	"time"

	"sonakshi-pos/internal/auth"
	"sonakshi-pos/internal/config"
	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/handlers"
	"sonakshi-pos/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	auth.Init(cfg.JWTSecret)
	database.Connect(cfg)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", middleware.RateLimit("10-M"), handlers.Login)
	r.GET("/api/system/status", handlers.GetSystemStatus)

	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", handlers.Register)
		log.Println("WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("Registration route is disabled.")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// CASHIER & ADMIN: the till itself
		api.GET("/items", handlers.GetItems)
		api.GET("/items/:id", handlers.GetItem)
		api.GET("/items/scan/:barcode", handlers.ScanItem)
		api.POST("/checkout", handlers.Checkout)
		api.GET("/sales", handlers.GetSales)
		api.GET("/sales/:id", handlers.GetSale)
		api.GET("/stock/movements", handlers.GetStockMovements)

		// ADMIN ONLY: catalog management, stock corrections, reports
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/items", handlers.AddItem)
			admin.PUT("/items/:id", handlers.UpdateItem)
			admin.DELETE("/items/:id", handlers.DeleteItem)
			admin.POST("/items/generate-barcode", handlers.GenerateBarcode)
			admin.POST("/items/generate-sku", handlers.GenerateSKU)
			admin.GET("/items/export", handlers.ExportItems)

			admin.DELETE("/sales/:id", handlers.DeleteSale)
			admin.GET("/sales/export", handlers.ExportSales)

			admin.POST("/stock/adjust", handlers.AdjustStock)

			admin.GET("/reports/dashboard", handlers.GetDashboard)
			admin.GET("/reports/valuation", handlers.GetStockValuation)

			admin.POST("/ask", handlers.AskAI)
		}
	}

	// Serve the built front-end; on a hard refresh of a client route,
	// hand back index.html so the SPA router takes over.
	r.Static("/assets", "./web/assets")
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	log.Println("Server starting on " + cfg.BaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
