package services

import (
	"errors"
	"fmt"

	"github.com/ombahiwal/tabme-min/models"
	"github.com/ombahiwal/tabme-min/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LineRequest is one requested order line, already shape-validated by the
// transport layer (quantity ≥ 1).
type LineRequest struct {
	MenuItemID uint
	Quantity   int
	Notes      string
}

// OrderService owns the order lifecycle: creation with price/name
// snapshots, status transitions and the append-only status ledger.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create places a new order for a table. The table must be active and
// belong to restaurantID; every requested item must resolve within the
// same restaurant and be available. Any failing line aborts the whole
// order — partial orders are never persisted.
//
// This is the only place snapshots are taken: each line copies the menu
// item's name and price as they are right now, and the order total is the
// sum of priceSnapshot × quantity. Later catalog edits do not touch them.
func (s *OrderService) Create(restaurantID, tableID uint, lines []LineRequest, notes, customerName string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		err := tx.Where("id = ? AND restaurant_id = ? AND is_active = ?", tableID, restaurantID, true).
			First(&table).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var orderLines []models.OrderLine
		var total float64
		for _, line := range lines {
			var item models.MenuItem
			err := tx.Where("id = ? AND restaurant_id = ? AND is_available = ?",
				line.MenuItemID, restaurantID, true).First(&item).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: menu item %d", ErrUnavailableItem, line.MenuItemID)
				}
				return err
			}

			total += item.Price * float64(line.Quantity)
			orderLines = append(orderLines, models.OrderLine{
				MenuItemID:    item.ID,
				NameSnapshot:  item.Name,
				PriceSnapshot: item.Price,
				Quantity:      line.Quantity,
				Notes:         line.Notes,
			})
		}

		order = &models.Order{
			PublicID:     uuid.NewString(),
			RestaurantID: restaurantID,
			TableID:      tableID,
			Status:       models.StatusCreated,
			Total:        total,
			Notes:        notes,
			CustomerName: customerName,
			Lines:        orderLines,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// First ledger entry, written explicitly rather than via any
		// save hook.
		entry := models.OrderStatusEntry{
			OrderID:   order.ID,
			Status:    models.StatusCreated,
			CreatedAt: order.CreatedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		order.History = []models.OrderStatusEntry{entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves an order to newStatus and appends a ledger entry. The
// order must belong to restaurantID; a foreign order reads as not found.
// Terminal states and edges outside the state graph are rejected.
//
// The status write is a compare-and-swap on the current status, so of two
// concurrent transitions exactly one wins and the other is rejected — the
// ledger never records a transition that did not happen.
func (s *OrderService) Transition(restaurantID uint, publicID string, newStatus models.OrderStatus, note string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("public_id = ?", publicID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.RestaurantID != restaurantID {
		return nil, ErrTenantMismatch
	}

	if statemachine.IsTerminal(order.Status) {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
	}
	if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND restaurant_id = ? AND status = ?", order.ID, restaurantID, order.Status).
			Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race against a concurrent transition.
			return fmt.Errorf("%w: order status changed concurrently", ErrInvalidTransition)
		}

		entry := models.OrderStatusEntry{
			OrderID: order.ID,
			Status:  newStatus,
			Note:    note,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Lines").Preload("History").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByPublicID fetches an order with its lines and full status history.
// Deliberately not tenant-restricted: the unguessable public id works as a
// bearer capability for the customer tracking view.
func (s *OrderService) GetByPublicID(publicID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Lines").Preload("History").
		Preload("Table").Preload("Restaurant").
		Where("public_id = ?", publicID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListForRestaurant returns the tenant's orders newest first, optionally
// filtered to a set of statuses, with their lines and table preloaded.
func (s *OrderService) ListForRestaurant(restaurantID uint, statuses []models.OrderStatus, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Preload("Lines").Preload("Table").
		Where("restaurant_id = ?", restaurantID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var orders []models.Order
	err := query.Order("created_at desc").Limit(limit).Find(&orders).Error
	return orders, err
}
