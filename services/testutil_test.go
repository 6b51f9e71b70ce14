package services

import (
	"path/filepath"
	"testing"

	"github.com/ombahiwal/tabme-min/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, Currency: "USD", IsActive: true}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return r
}

func createTable(t *testing.T, db *gorm.DB, restaurantID uint, number int) *models.Table {
	t.Helper()
	tbl := &models.Table{
		RestaurantID: restaurantID,
		Name:         "Table",
		Number:       number,
		QRToken:      NewQRTokenRegistry(db).Issue(),
		Capacity:     4,
		IsActive:     true,
	}
	if err := db.Create(tbl).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return tbl
}

func createMenuItem(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64) *models.MenuItem {
	t.Helper()
	cat := &models.MenuCategory{RestaurantID: restaurantID, Name: "Mains", IsActive: true}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	item := &models.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   cat.ID,
		Name:         name,
		Price:        price,
		IsAvailable:  true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	return item
}
