package handlers

import (
	"net/http"

	"github.com/ombahiwal/tabme-min/middleware"
	"github.com/ombahiwal/tabme-min/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant profile ──────────────────────────────────────────────────────

// GetMyRestaurant fetches the caller's restaurant, assigning its slug on
// first read if a legacy row never got one
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	if _, err := h.Identity.EnsureRestaurantSlug(restaurantID); err != nil {
		respondError(c, err)
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateMyRestaurant updates restaurant details. The slug is deliberately
// absent from the whitelist: once assigned it never changes.
func (h *Handler) UpdateMyRestaurant(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "currency": true, "address": true, "phone": true,
		"email": true, "description": true, "is_active": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	h.DB.Model(&restaurant).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// ── Menu categories ─────────────────────────────────────────────────────────

type MenuCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// CreateCategory adds a menu category
func (h *Handler) CreateCategory(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var req MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.MenuCategory{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory edits a category within the caller's restaurant
func (h *Handler) UpdateCategory(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var category models.MenuCategory
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "sort_order": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	h.DB.Model(&category).Updates(update)
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category
func (h *Handler) DeleteCategory(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var category models.MenuCategory
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.DB.Delete(&category)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ── Menu items ──────────────────────────────────────────────────────────────

type MenuItemRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
}

// CreateMenuItem adds an item to the restaurant's menu
func (h *Handler) CreateMenuItem(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.MenuCategory
	if err := h.DB.Where("id = ? AND restaurant_id = ?", req.CategoryID, restaurantID).First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not belong to this restaurant"})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		SortOrder:    req.SortOrder,
		IsAvailable:  true,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateMenuItem edits a menu item. Existing orders keep their captured
// name and price whatever changes here.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var item models.MenuItem
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "image_url": true,
		"is_available": true, "sort_order": true, "category_id": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	h.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteMenuItem removes a menu item
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	restaurantID := middleware.GetRestaurantID(c)

	var item models.MenuItem
	if err := h.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
