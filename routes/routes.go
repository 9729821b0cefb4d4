package routes

import (
	"os"
	"strings"

	"sneakcare-backend/config"
	"sneakcare-backend/controllers"
	"sneakcare-backend/services"
	"sneakcare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{
		"https://sneakcare.mx",
		"https://admin.sneakcare.mx",
		"http://localhost:3000",
	}
}

func SetupRouter(db *gorm.DB, notifier *services.Notifier, store *services.MediaStorage, checkout *services.Checkout) *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			for _, o := range origins {
				if origin == o {
					return true
				}
			}
			return false
		},
	}))

	r.Use(config.PerformanceLogger())

	// Public site routes, no auth
	public := r.Group("/api")
	{
		public.POST("/contact", controllers.CreateContactMessage(db))
		public.POST("/booking", controllers.CreateBooking(db, notifier))
		public.GET("/booking/zones/:cp", controllers.CheckZone(db))
		public.GET("/track/:reference", controllers.TrackReference(db))
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register(db))
		auth.POST("/login", controllers.Login(db))

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me(db))
	}

	api := r.Group("/api/admin")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient(db))
			clients.GET("", controllers.GetClients(db))
			clients.GET("/:id", controllers.GetClient(db))
			clients.PUT("/:id", controllers.UpdateClient(db))
			clients.DELETE("/:id", utils.RequireOwner(), controllers.DeleteClient(db))
		}

		// Service catalog routes
		svc := api.Group("/services")
		{
			svc.POST("", controllers.CreateService(db))
			svc.GET("", controllers.GetServices(db))
			svc.GET("/:id", controllers.GetService(db))
			svc.PUT("/:id", controllers.UpdateService(db))
			svc.DELETE("/:id", utils.RequireOwner(), controllers.DeleteService(db))
		}

		// Product and inventory routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct(db))
			products.GET("", controllers.GetProducts(db))
			products.GET("/:id", controllers.GetProduct(db))
			products.PUT("/:id", controllers.UpdateProduct(db))
			products.POST("/:id/stock", controllers.AdjustStock(db))
			products.GET("/:id/movements", controllers.GetStockMovements(db))
			products.DELETE("/:id", utils.RequireOwner(), controllers.DeleteProduct(db))
		}
		api.POST("/product-categories", controllers.CreateProductCategory(db))
		api.GET("/product-categories", controllers.GetProductCategories(db))

		// POS checkout
		api.POST("/pos/checkout", controllers.POSCheckout(db, checkout))

		// Order routes
		orders := api.Group("/orders")
		{
			orders.GET("", controllers.GetOrders(db))
			orders.GET("/export", controllers.ExportOrdersToExcel(db))
			orders.GET("/ws", controllers.OrderFeed())
			orders.GET("/:id", controllers.GetOrder(db))
			orders.PUT("/:id/status", controllers.UpdateOrderStatus(db, notifier))
			orders.GET("/:id/receipt", controllers.GetOrderReceipt(db))
			orders.POST("/:id/payments", controllers.RegisterPayment(db))
			orders.GET("/:id/payments", controllers.GetOrderPayments(db))
			orders.PUT("/:id/storage", controllers.AssignStorageLocations(db))
		}
		api.GET("/storage-boxes", controllers.GetStorageBoxes(db))

		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.GET("", controllers.GetReservations(db))
			reservations.GET("/:id", controllers.GetReservation(db))
			reservations.PUT("/:id/status", controllers.UpdateReservationStatus(db))
			reservations.POST("/:id/convert", controllers.ConvertReservation(db, checkout))
		}

		// Coverage zone routes
		zones := api.Group("/zones")
		{
			zones.POST("", controllers.CreateZone(db))
			zones.GET("", controllers.GetZones(db))
			zones.PUT("/:id", controllers.UpdateZone(db))
			zones.DELETE("/:id", utils.RequireOwner(), controllers.DeleteZone(db))
		}

		// Contact inbox routes
		messages := api.Group("/messages")
		{
			messages.GET("", controllers.GetContactMessages(db))
			messages.GET("/stats", controllers.GetContactMessageStats(db))
			messages.PATCH("/:id", controllers.UpdateContactMessageFlags(db))
			messages.DELETE("/:id", controllers.DeleteContactMessage(db))
		}

		// Media routes
		api.POST("/media", controllers.UploadMedia(db, store))
		api.GET("/media/:entityType/:entityId", controllers.GetEntityMedia(db))
		api.DELETE("/media/:id", controllers.DeleteMedia(db, store))

		// Reports routes
		reportController := controllers.ReportController{DB: db}
		api.GET("/reports", utils.RequireOwner(), reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview(db))
	}

	return r
}
