// kassua-import replays a legacy MySQL dump into the marketplace database.
//
//	kassua-import -file habou.sql
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Mamba6389/Kassua-marketplace/importer"
	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	file := flag.String("file", "", "path to the legacy SQL dump")
	flag.Parse()
	if *file == "" {
		log.Fatal("❌ -file is required")
	}

	_ = godotenv.Load()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("❌ Failed to read dump: %v", err)
	}

	dump, err := importer.ParseDump(string(raw))
	if err != nil {
		log.Fatalf("❌ Failed to parse dump: %v", err)
	}
	log.Printf("📦 Parsed dump: %d users, %d products, %d purchases, %d cart rows",
		len(dump.Users), len(dump.Products), len(dump.Purchases), len(dump.CartRows))

	db := initDatabase()
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

	if err := importer.Replay(db, dump); err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}
	log.Println("✅ Import completed")
}

func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
