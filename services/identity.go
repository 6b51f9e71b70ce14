package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ombahiwal/tabme-min/identifier"
	"github.com/ombahiwal/tabme-min/models"

	"gorm.io/gorm"
)

// slugMaxAttempts bounds the retry-with-suffix loop for generated slugs
// and codes. After this many collisions the caller gets ErrConflict.
const slugMaxAttempts = 5

// fallbackSlugBase is used when a restaurant name normalizes to something
// shorter than identifier.MinLength.
const fallbackSlugBase = "restaurant"

// IdentityResolver lazily assigns the human-facing identifiers every
// restaurant and table must carry: a globally unique slug and a
// per-restaurant unique code. Records created before identifiers existed
// get one on first use.
type IdentityResolver struct {
	db *gorm.DB
}

func NewIdentityResolver(db *gorm.DB) *IdentityResolver {
	return &IdentityResolver{db: db}
}

// EnsureRestaurantSlug returns the restaurant's slug, generating and
// persisting one if it was never assigned. An existing slug is returned
// unchanged, whatever the restaurant is named today.
//
// The write is conditional on the slug still being unassigned, so two
// concurrent calls cannot clobber each other: the loser of the race
// observes zero affected rows, re-reads and returns the winner's slug.
func (r *IdentityResolver) EnsureRestaurantSlug(restaurantID uint) (string, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if restaurant.Slug != nil && *restaurant.Slug != "" {
		return *restaurant.Slug, nil
	}

	base := identifier.Normalize(restaurant.Name)
	if len(base) < identifier.MinLength {
		base = fallbackSlugBase
	}

	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = base + "-" + identifier.RandomSuffix()
		}

		res := r.db.Model(&models.Restaurant{}).
			Where("id = ? AND (slug IS NULL OR slug = '')", restaurantID).
			Update("slug", candidate)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				continue
			}
			return "", res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent caller won the race; their slug is the slug.
			if err := r.db.First(&restaurant, restaurantID).Error; err != nil {
				return "", err
			}
			if restaurant.Slug != nil && *restaurant.Slug != "" {
				return *restaurant.Slug, nil
			}
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: could not assign a unique slug for restaurant %d", ErrConflict, restaurantID)
}

// EnsureTableCode returns the table's code, generating one from its number
// when unassigned. Same conditional-write pattern as restaurant slugs, but
// uniqueness is scoped to the owning restaurant.
func (r *IdentityResolver) EnsureTableCode(table *models.Table) (string, error) {
	if table.Code != nil && *table.Code != "" {
		return *table.Code, nil
	}

	base := fmt.Sprintf("table-%d", table.Number)

	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = base + "-" + identifier.RandomSuffix()
		}

		res := r.db.Model(&models.Table{}).
			Where("id = ? AND (code IS NULL OR code = '')", table.ID).
			Update("code", candidate)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				continue
			}
			return "", res.Error
		}
		if res.RowsAffected == 0 {
			var fresh models.Table
			if err := r.db.First(&fresh, table.ID).Error; err != nil {
				return "", err
			}
			if fresh.Code != nil && *fresh.Code != "" {
				table.Code = fresh.Code
				return *fresh.Code, nil
			}
			continue
		}
		table.Code = &candidate
		return candidate, nil
	}
	return "", fmt.Errorf("%w: could not assign a unique code for table %d", ErrConflict, table.ID)
}

// ClaimTableCode validates an explicitly requested table code and checks it
// against the per-restaurant uniqueness constraint. Unlike generated codes,
// a colliding explicit code is rejected outright rather than suffixed —
// the caller asked for that exact code.
func (r *IdentityResolver) ClaimTableCode(restaurantID uint, raw string, excludeTableID uint) (string, error) {
	code := identifier.Normalize(raw)
	if len(code) < identifier.MinLength {
		return "", ErrInvalidIdentifier
	}

	var count int64
	q := r.db.Model(&models.Table{}).
		Where("restaurant_id = ? AND code = ?", restaurantID, code)
	if excludeTableID != 0 {
		q = q.Where("id <> ?", excludeTableID)
	}
	if err := q.Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", fmt.Errorf("%w: table code %q", ErrConflict, code)
	}
	return code, nil
}

// isUniqueViolation recognizes a uniqueness-index rejection from the
// storage layer. GORM translates driver errors when TranslateError is on;
// the string check covers drivers that do not.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
