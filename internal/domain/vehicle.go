package domain

import (
	"time"

	"github.com/google/uuid"
)

// VehicleType enumerates the rolling-stock categories of the fleet.
type VehicleType string

const (
	VehicleTypeBus            VehicleType = "bus"
	VehicleTypeArticulatedBus VehicleType = "articulated_bus"
	VehicleTypeTram           VehicleType = "tram"
	VehicleTypeMinibus        VehicleType = "minibus"
)

// Valid reports whether t is a known vehicle type.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeBus, VehicleTypeArticulatedBus, VehicleTypeTram, VehicleTypeMinibus:
		return true
	}
	return false
}

// VehicleOptions is the typed equipment profile of a vehicle, stored as a
// jsonb column rather than opaque encoded text.
type VehicleOptions struct {
	AirConditioning bool `json:"airConditioning"`
	USBPorts        bool `json:"usbPorts"`
	WheelchairRamp  bool `json:"wheelchairRamp"`
	BikeRack        bool `json:"bikeRack"`
}

// Vehicle is one unit of the fleet.
type Vehicle struct {
	ID           uuid.UUID      `json:"id"`
	FleetNumber  string         `json:"fleetNumber"`
	Registration string         `json:"registration"`
	Type         VehicleType    `json:"type"`
	Capacity     int            `json:"capacity"`
	InService    bool           `json:"inService"`
	Options      VehicleOptions `json:"options"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
