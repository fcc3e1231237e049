package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Mamba6389/Kassua-marketplace/mailer"
	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/Mamba6389/Kassua-marketplace/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	log.Println("✅ Starting Kassua marketplace API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Purchase{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if err := seedCategories(db); err != nil {
		log.Fatalf("❌ Category seed failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, mailer.FromEnv())

	// Hourly maintenance: expired guest sessions and stale reset tokens
	startMaintenanceJobs(db)

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

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
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

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedCategories inserts the fixed taxonomy, leaving existing rows alone.
func seedCategories(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.DefaultCategories).Error
}

func startMaintenanceJobs(db *gorm.DB) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		purgeExpiredGuests(db)
		purgeExpiredResetTokens(db)
	})
	if err != nil {
		log.Fatalf("❌ Failed to schedule maintenance jobs: %v", err)
	}
	c.Start()
}

// purgeExpiredGuests drops guest sessions past their expiry along with any
// cart they left behind.
func purgeExpiredGuests(db *gorm.DB) {
	var expired []models.GuestUser
	if err := db.Where("expires_at < ?", time.Now()).Find(&expired).Error; err != nil {
		log.Printf("❌ Guest purge scan failed: %v", err)
		return
	}
	for _, guest := range expired {
		err := db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			if err := tx.Where("owner_id = ?", guest.ID).First(&cart).Error; err == nil {
				if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&cart).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&guest).Error
		})
		if err != nil {
			log.Printf("❌ Failed to purge guest %s: %v", guest.ID, err)
		}
	}
	if len(expired) > 0 {
		log.Printf("🗑️ Purged %d expired guest sessions", len(expired))
	}
}

func purgeExpiredResetTokens(db *gorm.DB) {
	res := db.Model(&models.User{}).
		Where("reset_expires IS NOT NULL AND reset_expires < ?", time.Now()).
		Updates(map[string]interface{}{"reset_token": nil, "reset_expires": nil})
	if res.Error != nil {
		log.Printf("❌ Reset token purge failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("🗑️ Cleared %d expired reset tokens", res.RowsAffected)
	}
}
