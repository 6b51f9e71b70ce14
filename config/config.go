package config

import (
	"log"
	"os"

	"github.com/ombahiwal/tabme-min/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(GetEnv("JWT_SECRET", "tabme_super_secret_2024"))

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BaseURL is the public origin used to derive QR and alias URLs.
func BaseURL() string {
	return GetEnv("BASE_URL", "http://localhost:8080")
}

// InitDB opens the sqlite database and migrates the schema. The returned
// handle is passed explicitly to every service that needs it; there is no
// package-level connection.
func InitDB(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderStatusEntry{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
	return db
}
