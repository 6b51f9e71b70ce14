package routes

import (
	"github.com/ombahiwal/tabme-min/handlers"
	"github.com/ombahiwal/tabme-min/middleware"
	"github.com/ombahiwal/tabme-min/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Table resolution: opaque token scan and slug/code alias
		public.GET("/qr/:token", h.ResolveQR)
		public.GET("/r/:restaurantSlug/:tableCode", h.ResolveAlias)

		// Customer menu + ordering (no auth, table-scoped)
		public.GET("/restaurants/:id/menu", h.GetMenu)
		public.POST("/orders", h.CreateOrder)
		public.GET("/orders/:id", h.GetOrder)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", h.GetProfile)
	}

	// ── Staff routes (admin or staff) ──────────────────────────────
	staff := r.Group("/api/restaurant")
	staff.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin, models.RoleStaff))
	{
		staff.GET("", h.GetMyRestaurant)
		staff.GET("/tables", h.ListTables)
		staff.GET("/orders", h.ListOrders)
		staff.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Admin-only routes ──────────────────────────────────────────
	admin := r.Group("/api/restaurant")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.PUT("", h.UpdateMyRestaurant)

		// Tables
		admin.POST("/tables", h.CreateTable)
		admin.PUT("/tables/:id", h.UpdateTable)
		admin.DELETE("/tables/:id", h.DeleteTable)
		admin.POST("/tables/:id/regenerate-qr", h.RegenerateQR)

		// Menu management
		admin.POST("/menu/categories", h.CreateCategory)
		admin.PUT("/menu/categories/:id", h.UpdateCategory)
		admin.DELETE("/menu/categories/:id", h.DeleteCategory)
		admin.POST("/menu/items", h.CreateMenuItem)
		admin.PUT("/menu/items/:id", h.UpdateMenuItem)
		admin.DELETE("/menu/items/:id", h.DeleteMenuItem)
	}
}
