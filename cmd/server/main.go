package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yavrumyan/B2BPortal/config"
	"github.com/yavrumyan/B2BPortal/internal/email"
	"github.com/yavrumyan/B2BPortal/internal/handler"
	"github.com/yavrumyan/B2BPortal/internal/logger"
	"github.com/yavrumyan/B2BPortal/internal/middleware"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	zlog, err := logger.New(config.AppConfig.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	zlog.Info("Running migrations...")
	if err := database.Migrate(database.DB); err != nil {
		zlog.Fatalf("Migration failed: %v", err)
	}
	zlog.Info("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedAdminAndSettings()

	mail := email.NewService(config.AppConfig.SMTP, config.AppConfig.Server.BaseURL, zlog)

	// 4. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Setup Routes
	authHandler := &handler.AuthHandler{Mail: mail}
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
		authRoutes.POST("/recover-password", authHandler.RecoverPassword)
		authRoutes.POST("/reset-password", authHandler.ResetPassword)
	}
	r.POST("/api/registrations", authHandler.Register)

	productHandler := &handler.ProductHandler{}
	r.GET("/api/products", middleware.OptionalAuth(), productHandler.ListProducts)
	r.GET("/api/products/:id", middleware.OptionalAuth(), productHandler.GetProduct)
	productAdmin := r.Group("/api/products")
	productAdmin.Use(middleware.AuthMiddleware("admin"))
	{
		productAdmin.POST("", productHandler.CreateProduct)
		productAdmin.PATCH("/:id", productHandler.UpdateProduct)
		productAdmin.DELETE("/:id", productHandler.DeleteProduct)
		productAdmin.POST("/bulk-import", productHandler.BulkImport)
	}

	orderHandler := &handler.OrderHandler{Mail: mail}
	documentHandler := &handler.DocumentHandler{}
	orderRoutes := r.Group("/api/orders")
	orderRoutes.Use(middleware.AuthMiddleware())
	{
		orderRoutes.GET("", orderHandler.ListOrders)
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.PATCH("/:id/seen", orderHandler.MarkSeen)
		orderRoutes.GET("/:id/comments", orderHandler.ListComments)
		orderRoutes.POST("/:id/comments", orderHandler.AddComment)
		orderRoutes.GET("/:id/pdf", documentHandler.OrderInvoice)
	}
	orderAdmin := r.Group("/api/orders")
	orderAdmin.Use(middleware.AuthMiddleware("admin"))
	{
		orderAdmin.PATCH("/:id/status", orderHandler.UpdateStatus)
		orderAdmin.PATCH("/:id/payment-status", orderHandler.UpdatePaymentStatus)
		orderAdmin.PATCH("/:id/delivery-status", orderHandler.UpdateDeliveryStatus)
		orderAdmin.PATCH("/:id/delivery-date", orderHandler.UpdateDeliveryDate)
		orderAdmin.PATCH("/:id/items", orderHandler.UpdateItems)
		orderAdmin.DELETE("/:id", orderHandler.DeleteOrder)
	}

	customerHandler := &handler.CustomerHandler{Mail: mail}
	r.GET("/api/customers", middleware.AuthMiddleware("admin"), customerHandler.ListCustomers)
	r.PATCH("/api/customers/:id", middleware.AuthMiddleware(), customerHandler.UpdateCustomer)
	r.DELETE("/api/customers/:id", middleware.AuthMiddleware("admin"), customerHandler.DeleteCustomer)
	r.GET("/api/customers/:id/stats", middleware.AuthMiddleware(), customerHandler.CustomerStats)
	r.GET("/api/customers/:id/price-list/pdf", middleware.AuthMiddleware("admin"), documentHandler.PriceListForCustomer)

	cartHandler := &handler.CartHandler{}
	cartRoutes := r.Group("/api/cart")
	cartRoutes.Use(middleware.AuthMiddleware())
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("", cartHandler.UpdateCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
	}

	settingsHandler := &handler.SettingsHandler{}
	r.GET("/api/settings", settingsHandler.GetSettings)
	r.PATCH("/api/settings", middleware.AuthMiddleware("admin"), settingsHandler.UpdateSettings)

	inquiryHandler := &handler.InquiryHandler{Mail: mail}
	inquiryRoutes := r.Group("/api/inquiries")
	inquiryRoutes.Use(middleware.AuthMiddleware())
	{
		inquiryRoutes.POST("", inquiryHandler.CreateInquiry)
		inquiryRoutes.GET("", inquiryHandler.ListInquiries)
		inquiryRoutes.GET("/:id", inquiryHandler.GetInquiry)
		inquiryRoutes.PATCH("/:id/status", inquiryHandler.UpdateStatus)
		inquiryRoutes.PATCH("/:id/seen", inquiryHandler.MarkSeen)
	}
	r.PATCH("/api/inquiries/:id/reject", middleware.AuthMiddleware("admin"), inquiryHandler.Reject)
	r.DELETE("/api/inquiries/:id", middleware.AuthMiddleware("admin"), inquiryHandler.DeleteInquiry)

	offerHandler := &handler.OfferHandler{Mail: mail}
	offerRoutes := r.Group("/api/offers")
	offerRoutes.Use(middleware.AuthMiddleware())
	{
		offerRoutes.GET("/inquiry/:inquiryId", offerHandler.ListByInquiry)
		offerRoutes.PATCH("/:id/seen", offerHandler.MarkSeen)
		offerRoutes.GET("/unread-count", offerHandler.UnreadCount)
	}
	r.POST("/api/offers", middleware.AuthMiddleware("admin"), offerHandler.CreateOffer)

	analyticsHandler := &handler.AnalyticsHandler{}
	r.GET("/api/analytics", middleware.AuthMiddleware("admin"), analyticsHandler.Dashboard)

	r.GET("/api/price-list/pdf", middleware.AuthMiddleware(), documentHandler.PriceList)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 6. Start Server
	port := config.AppConfig.Server.Port
	zlog.Infof("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		zlog.Fatalf("Failed to run server: %v", err)
	}
}
