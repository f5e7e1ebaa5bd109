package domain

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentChecks records the onboard equipment verified at dispatch when a
// driver/trip pairing is validated. Stored as a typed jsonb column.
type EquipmentChecks struct {
	TicketMachine bool `json:"ticketMachine"`
	Radio         bool `json:"radio"`
	SAEIVConsole  bool `json:"saeivConsole"`
	Defibrillator bool `json:"defibrillator"`
}

// CheckIn ("pointage") records that a conductor was validated for a trip
// with a given vehicle at dispatch.
type CheckIn struct {
	ID          uuid.UUID       `json:"id"`
	TripID      uuid.UUID       `json:"tripId"`
	ConductorID uuid.UUID       `json:"conductorId"`
	VehicleID   uuid.UUID       `json:"vehicleId"`
	CheckedAt   time.Time       `json:"checkedAt"`
	Equipment   EquipmentChecks `json:"equipment"`
	Remarks     string          `json:"remarks,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
