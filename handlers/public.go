package handlers

import (
	"net/http"
	"strings"

	"github.com/ombahiwal/tabme-min/models"
	"github.com/ombahiwal/tabme-min/services"
	"github.com/ombahiwal/tabme-min/statemachine"

	"github.com/gin-gonic/gin"
)

// tableSummary is the payload both resolve paths answer with.
func tableSummary(table *models.Table, restaurant *models.Restaurant) gin.H {
	return gin.H{
		"table": gin.H{
			"id":       table.ID,
			"name":     table.Name,
			"number":   table.Number,
			"code":     table.Code,
			"capacity": table.Capacity,
		},
		"restaurant": gin.H{
			"id":          restaurant.ID,
			"name":        restaurant.Name,
			"slug":        restaurant.Slug,
			"currency":    restaurant.Currency,
			"address":     restaurant.Address,
			"phone":       restaurant.Phone,
			"description": restaurant.Description,
		},
	}
}

// ResolveQR resolves a scanned opaque token to a table and its restaurant
func (h *Handler) ResolveQR(c *gin.Context) {
	table, restaurant, err := h.Registry.Resolve(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tableSummary(table, restaurant))
}

// ResolveAlias resolves the human-readable /r/<slug>/<code> path
func (h *Handler) ResolveAlias(c *gin.Context) {
	slug := strings.ToLower(c.Param("restaurantSlug"))
	code := strings.ToLower(c.Param("tableCode"))

	table, restaurant, err := h.Registry.ResolveAlias(slug, code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tableSummary(table, restaurant))
}

// GetMenu returns a restaurant's active categories with their available
// items, for the customer-facing menu view
func (h *Handler) GetMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.Where("id = ? AND is_active = ?", c.Param("id"), true).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var categories []models.MenuCategory
	h.DB.Where("restaurant_id = ? AND is_active = ?", restaurant.ID, true).
		Order("sort_order asc").Find(&categories)

	var items []models.MenuItem
	h.DB.Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).
		Order("sort_order asc").Find(&items)

	menu := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		var catItems []models.MenuItem
		for _, item := range items {
			if item.CategoryID == cat.ID {
				catItems = append(catItems, item)
			}
		}
		menu = append(menu, gin.H{
			"id":          cat.ID,
			"name":        cat.Name,
			"description": cat.Description,
			"items":       catItems,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": gin.H{
			"id":       restaurant.ID,
			"name":     restaurant.Name,
			"currency": restaurant.Currency,
		},
		"menu": menu,
	})
}

type CreateOrderRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	TableID      uint   `json:"table_id" binding:"required"`
	Notes        string `json:"notes"`
	CustomerName string `json:"customer_name"`
	Items        []struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
		Notes      string `json:"notes"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder places an order from a resolved table (public, no auth)
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]services.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.LineRequest{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}

	order, err := h.Orders.Create(req.RestaurantID, req.TableID, lines, req.Notes, req.CustomerName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         order.PublicID,
		"status":     order.Status,
		"items":      order.Lines,
		"total":      order.Total,
		"created_at": order.CreatedAt,
	})
}

// GetOrder returns an order with its full history. Anyone holding the
// order id can read it — it is the customer's tracking handle.
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.GetByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"table": gin.H{
			"id":     order.Table.ID,
			"name":   order.Table.Name,
			"number": order.Table.Number,
		},
		"restaurant": gin.H{
			"id":       order.Restaurant.ID,
			"name":     order.Restaurant.Name,
			"currency": order.Restaurant.Currency,
		},
	})
}

// GetStateMachineInfo returns the order lifecycle for documentation
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	transitions := make([]gin.H, 0)
	for _, t := range statemachine.GetAllTransitions() {
		transitions = append(transitions, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   transitions,
		"terminal_states": []models.OrderStatus{models.StatusPaid, models.StatusCancelled},
		"description":     "Dine-in Order Lifecycle State Machine",
	})
}
