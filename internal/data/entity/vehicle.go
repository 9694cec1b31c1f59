package entity

import "github.com/google/uuid"

type VehicleCategory string

const (
	VehicleCar     VehicleCategory = "car"
	VehicleVan     VehicleCategory = "van"
	VehicleScooter VehicleCategory = "scooter"
	VehicleBicycle VehicleCategory = "bicycle"
)

type Vehicle struct {
	Base
	PartnerID   uuid.UUID       `db:"partner_id"`
	Name        string          `db:"name"`
	Category    VehicleCategory `db:"category"`
	Seats       int             `db:"seats"`
	PricePerDay float64         `db:"price_per_day"`
	MediaRefs   []string        `db:"media_refs"`
	IsAvailable bool            `db:"is_available"`
}
