package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ombahiwal/tabme-min/middleware"
	"github.com/ombahiwal/tabme-min/models"

	"github.com/gin-gonic/gin"
)

// ListOrders returns the tenant's orders for the staff dashboard,
// optionally filtered by a comma-separated status list
func (h *Handler) ListOrders(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var statuses []models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, models.OrderStatus(s))
			}
		}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.Orders.ListForRestaurant(restaurantID, statuses, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
		out = append(out, gin.H{
			"id":            o.PublicID,
			"status":        o.Status,
			"items":         o.Lines,
			"total":         o.Total,
			"notes":         o.Notes,
			"customer_name": o.CustomerName,
			"created_at":    o.CreatedAt,
			"updated_at":    o.UpdatedAt,
			"table": gin.H{
				"id":     o.Table.ID,
				"name":   o.Table.Name,
				"number": o.Table.Number,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(out),
		"orders":        out,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus moves an order along the lifecycle state machine
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.Transition(restaurantID, c.Param("id"), req.Status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         order.PublicID,
		"status":     order.Status,
		"updated_at": order.UpdatedAt,
	})
}
