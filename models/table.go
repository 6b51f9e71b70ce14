package models

import "time"

type Table struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	RestaurantID uint   `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_tables_number;uniqueIndex:idx_tables_code"`
	Name         string `json:"name" gorm:"not null"`
	Number       int    `json:"number" gorm:"not null;uniqueIndex:idx_tables_number"`
	// Code is NULL until lazily assigned; unique per restaurant.
	Code *string `json:"code" gorm:"uniqueIndex:idx_tables_code"`
	// QRToken is unique across all restaurants and rotated as a whole,
	// never edited in place.
	QRToken   string    `json:"qr_token" gorm:"column:qr_token;uniqueIndex;not null"`
	Capacity  int       `json:"capacity" gorm:"default:4"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
