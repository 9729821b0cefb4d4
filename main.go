package main

import (
	"fmt"
	"log"
	"os"

	"sneakcare-backend/config"
	"sneakcare-backend/models"
	"sneakcare-backend/routes"
	"sneakcare-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.Close(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.ProductCategory{},
		&models.Product{},
		&models.StockMovement{},
		&models.Order{},
		&models.OrderServiceItem{},
		&models.OrderProductItem{},
		&models.OrderStatusEntry{},
		&models.Payment{},
		&models.Reservation{},
		&models.ReservationService{},
		&models.CoverageZone{},
		&models.ContactMessage{},
		&models.MediaFile{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	notifier := services.NewNotifier(db)
	notifier.StartScheduler()

	store := services.NewMediaStorageFromEnv()
	checkout := services.NewCheckout(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(db, notifier, store, checkout)
	printRoutes(r)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
