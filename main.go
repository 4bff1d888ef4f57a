package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/Hassanfedawy/dr.mano/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Order event publisher (no-op unless a broker is configured)
	pub := initPublisher()

	// Setup routes
	routes.SetupRoutes(r, db, pub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection. Constraint violations are
// translated to gorm sentinel errors so they can be mapped to the error
// taxonomy instead of leaking driver errors.
func initDatabase() *gorm.DB {
	config := &gorm.Config{
		TranslateError: true,
		// Order items snapshot deleted products; integrity is enforced in
		// the workflows, not by DB-level foreign keys.
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), config)
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initPublisher wires the Kafka order-event publisher when KAFKA_BROKERS is
// set (comma-separated host:port list).
func initPublisher() events.Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return events.Noop{}
	}
	log.Printf("✅ Publishing order events to Kafka brokers: %s", brokers)
	return events.NewKafkaPublisher(strings.Split(brokers, ","))
}
