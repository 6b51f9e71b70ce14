package models

import "time"

// OrderStatus represents all possible states of a dine-in order
type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusPaid      OrderStatus = "paid"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID uint `json:"-" gorm:"primaryKey"`
	// PublicID is the only identifier exposed outside the API. It doubles
	// as a bearer capability for the customer tracking view, so it must
	// not be guessable.
	PublicID     string             `json:"id" gorm:"uniqueIndex;not null"`
	RestaurantID uint               `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant         `json:"-" gorm:"foreignKey:RestaurantID"`
	TableID      uint               `json:"table_id" gorm:"not null;index"`
	Table        Table              `json:"-" gorm:"foreignKey:TableID"`
	Status       OrderStatus        `json:"status" gorm:"not null;default:'created'"`
	Total        float64            `json:"total" gorm:"not null"`
	Notes        string             `json:"notes,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	Lines        []OrderLine        `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	History      []OrderStatusEntry `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// OrderLine captures a menu item at the moment the order was placed.
// NameSnapshot and PriceSnapshot are written once and never touched again,
// however the catalog changes later.
type OrderLine struct {
	ID            uint    `json:"-" gorm:"primaryKey"`
	OrderID       uint    `json:"-" gorm:"not null;index"`
	MenuItemID    uint    `json:"menu_item_id" gorm:"not null"`
	NameSnapshot  string  `json:"name" gorm:"not null"`
	PriceSnapshot float64 `json:"price" gorm:"not null"`
	Quantity      int     `json:"quantity" gorm:"not null"`
	Notes         string  `json:"notes,omitempty"`
}

// OrderStatusEntry is one row of the append-only status ledger. Rows are
// only ever inserted; nothing in the codebase updates or deletes them.
type OrderStatusEntry struct {
	ID        uint        `json:"-" gorm:"primaryKey"`
	OrderID   uint        `json:"-" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"not null"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"timestamp"`
}
