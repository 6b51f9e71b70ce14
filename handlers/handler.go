package handlers

import (
	"errors"
	"net/http"

	"github.com/ombahiwal/tabme-min/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler bundles the services every endpoint needs. One instance is
// constructed at startup and shared by all routes; it holds no per-request
// state.
type Handler struct {
	DB       *gorm.DB
	Identity *services.IdentityResolver
	Registry *services.QRTokenRegistry
	Orders   *services.OrderService
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		DB:       db,
		Identity: services.NewIdentityResolver(db),
		Registry: services.NewQRTokenRegistry(db),
		Orders:   services.NewOrderService(db),
	}
}

// respondError maps service errors onto HTTP statuses. Tenant mismatches
// answer as plain not-found so the API never confirms that an entity
// exists under another restaurant.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrTenantMismatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnavailableItem),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
