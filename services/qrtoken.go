package services

import (
	"errors"
	"fmt"

	"github.com/ombahiwal/tabme-min/identifier"
	"github.com/ombahiwal/tabme-min/models"

	"gorm.io/gorm"
)

// QRTokenRegistry issues, rotates and resolves the opaque tokens printed
// on table QR codes. Tokens are unique across the whole system, enforced
// by the global unique index on tables.qr_token.
type QRTokenRegistry struct {
	db *gorm.DB
}

func NewQRTokenRegistry(db *gorm.DB) *QRTokenRegistry {
	return &QRTokenRegistry{db: db}
}

// Issue returns a fresh token for a table about to be created. Collision
// with an existing token is astronomically unlikely but still checked; the
// insert path relies on the unique index for the final word.
func (r *QRTokenRegistry) Issue() string {
	return identifier.NewQRToken()
}

// Rotate assigns a new token to the table, invalidating the previous one
// in the same write. Scoped to the owning restaurant so one tenant's admin
// cannot rotate another tenant's tables.
func (r *QRTokenRegistry) Rotate(restaurantID, tableID uint) (*models.Table, error) {
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		token := identifier.NewQRToken()
		res := r.db.Model(&models.Table{}).
			Where("id = ? AND restaurant_id = ?", tableID, restaurantID).
			Update("qr_token", token)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				continue
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}

		var table models.Table
		if err := r.db.First(&table, tableID).Error; err != nil {
			return nil, err
		}
		return &table, nil
	}
	return nil, fmt.Errorf("%w: could not issue a unique qr token for table %d", ErrConflict, tableID)
}

// Resolve looks up a table by token. Inactive tables and inactive or
// missing restaurants do not resolve, even when the token matches.
func (r *QRTokenRegistry) Resolve(token string) (*models.Table, *models.Restaurant, error) {
	var table models.Table
	err := r.db.Where("qr_token = ? AND is_active = ?", token, true).First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var restaurant models.Restaurant
	err = r.db.Where("id = ? AND is_active = ?", table.RestaurantID, true).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return &table, &restaurant, nil
}

// ResolveAlias is the human-readable counterpart of Resolve: restaurant by
// slug, then table by code within it. Both must be active.
func (r *QRTokenRegistry) ResolveAlias(slug, code string) (*models.Table, *models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Where("slug = ? AND is_active = ?", slug, true).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var table models.Table
	err = r.db.Where("restaurant_id = ? AND code = ? AND is_active = ?", restaurant.ID, code, true).
		First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return &table, &restaurant, nil
}
