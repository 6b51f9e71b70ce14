package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ombahiwal/tabme-min/config"
	"github.com/ombahiwal/tabme-min/middleware"
	"github.com/ombahiwal/tabme-min/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// tableResponse includes the derived URLs staff print on the physical QR
// cards: the opaque scan URL and the human-readable alias.
func (h *Handler) tableResponse(table *models.Table, slug string) gin.H {
	base := config.BaseURL()
	resp := gin.H{
		"id":        table.ID,
		"name":      table.Name,
		"number":    table.Number,
		"code":      table.Code,
		"qr_token":  table.QRToken,
		"qr_url":    base + "/qr/" + table.QRToken,
		"capacity":  table.Capacity,
		"is_active": table.IsActive,
	}
	if slug != "" && table.Code != nil {
		resp["alias_url"] = base + "/r/" + slug + "/" + *table.Code
	}
	return resp
}

// ListTables returns the tenant's tables with their QR and alias URLs.
// Listing is also where legacy rows pick up missing slugs and codes.
func (h *Handler) ListTables(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	slug, err := h.Identity.EnsureRestaurantSlug(restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}

	var tables []models.Table
	h.DB.Where("restaurant_id = ?", restaurantID).Order("number asc").Find(&tables)

	out := make([]gin.H, 0, len(tables))
	for i := range tables {
		if _, err := h.Identity.EnsureTableCode(&tables[i]); err != nil {
			respondError(c, err)
			return
		}
		out = append(out, h.tableResponse(&tables[i], slug))
	}
	c.JSON(http.StatusOK, gin.H{"tables": out})
}

type CreateTableRequest struct {
	Name     string `json:"name" binding:"required"`
	Number   int    `json:"number" binding:"required,min=1"`
	Code     string `json:"code"`
	Capacity int    `json:"capacity"`
}

// CreateTable adds a table. An explicitly requested code must be unique
// within the restaurant and is rejected on collision; without one a code
// is generated from the table number.
func (h *Handler) CreateTable(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := models.Table{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Number:       req.Number,
		QRToken:      h.Registry.Issue(),
		Capacity:     req.Capacity,
		IsActive:     true,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}

	if req.Code != "" {
		code, err := h.Identity.ClaimTableCode(restaurantID, req.Code, 0)
		if err != nil {
			respondError(c, err)
			return
		}
		table.Code = &code
	}

	if err := h.DB.Create(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{"error": "Table number or code already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}

	if _, err := h.Identity.EnsureTableCode(&table); err != nil {
		respondError(c, err)
		return
	}

	slug, err := h.Identity.EnsureRestaurantSlug(restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.tableResponse(&table, slug))
}

type UpdateTableRequest struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Capacity *int    `json:"capacity"`
	IsActive *bool   `json:"is_active"`
}

// UpdateTable edits a table within the caller's restaurant. Code changes
// go through the same explicit-claim path as creation.
func (h *Handler) UpdateTable(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var table models.Table
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Capacity != nil {
		update["capacity"] = *req.Capacity
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.Code != nil {
		code, err := h.Identity.ClaimTableCode(restaurantID, *req.Code, table.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		update["code"] = code
	}

	if err := h.DB.Model(&table).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}

	slug, err := h.Identity.EnsureRestaurantSlug(restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.tableResponse(&table, slug))
}

// DeleteTable removes a table from the caller's restaurant
func (h *Handler) DeleteTable(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var table models.Table
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.DB.Delete(&table)
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}

// RegenerateQR rotates a table's QR token, invalidating the old one
func (h *Handler) RegenerateQR(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var table models.Table
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	rotated, err := h.Registry.Rotate(restaurantID, table.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	slug, err := h.Identity.EnsureRestaurantSlug(restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.tableResponse(rotated, slug))
}
