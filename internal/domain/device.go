package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeviceStatus enumerates the lifecycle states of an onboard SAEIV unit.
type DeviceStatus string

const (
	DeviceStatusActive      DeviceStatus = "active"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
	DeviceStatusRetired     DeviceStatus = "retired"
)

// Valid reports whether s is a known device status.
func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceStatusActive, DeviceStatusMaintenance, DeviceStatusRetired:
		return true
	}
	return false
}

// Device is an onboard SAEIV information/ticketing unit, optionally mounted
// in a vehicle. VehicleID is nil while the unit sits in the workshop.
type Device struct {
	ID         uuid.UUID    `json:"id"`
	VehicleID  *uuid.UUID   `json:"vehicleId,omitempty"`
	Serial     string       `json:"serial"`
	Firmware   string       `json:"firmware"`
	Status     DeviceStatus `json:"status"`
	LastSeenAt *time.Time   `json:"lastSeenAt,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
