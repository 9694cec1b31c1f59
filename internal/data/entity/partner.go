package entity

import "github.com/google/uuid"

// BusinessType categorizes a partner's listings. The set is closed; every
// partner belongs to exactly one category.
type BusinessType string

const (
	BusinessAccommodation BusinessType = "accommodation"
	BusinessTours         BusinessType = "tours"
	BusinessEvents        BusinessType = "events"
	BusinessRestaurant    BusinessType = "restaurant"
	BusinessVehicles      BusinessType = "vehicles"
	BusinessProducts      BusinessType = "products"
	BusinessPackages      BusinessType = "packages"
)

func ValidBusinessType(t BusinessType) bool {
	switch t {
	case BusinessAccommodation, BusinessTours, BusinessEvents, BusinessRestaurant,
		BusinessVehicles, BusinessProducts, BusinessPackages:
		return true
	}
	return false
}

// Partner is a business profile linked 1:1 to a user.
type Partner struct {
	Base
	UserID       uuid.UUID    `db:"user_id"`
	BusinessName string       `db:"business_name"`
	BusinessType BusinessType `db:"business_type"`
	Description  *string      `db:"description"`
	IsVerified   bool         `db:"is_verified"`
	IsActive     bool         `db:"is_active"`
}
