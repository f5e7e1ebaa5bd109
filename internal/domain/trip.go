package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus enumerates the lifecycle states of a scheduled trip.
type TripStatus string

const (
	TripStatusPlanned    TripStatus = "planned"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// Valid reports whether s is a known trip status.
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusPlanned, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// Trip ("service") is one scheduled run of a Direction on a specific date.
//
// The Direction is the canonical scheduling key; LineID is carried alongside
// for display and reporting. Two trips sharing (DirectionID, ServiceDate,
// StartTime, EndTime) are the same logical trip — the schema enforces this
// with a unique index.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	DirectionID uuid.UUID  `json:"directionId"`
	LineID      *uuid.UUID `json:"lineId,omitempty"`
	ConductorID *uuid.UUID `json:"conductorId,omitempty"`
	ServiceDate Date       `json:"date"`
	StartTime   TimeOfDay  `json:"startTime"`
	EndTime     TimeOfDay  `json:"endTime"`
	Status      TripStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TripDetail is a Trip joined with its display associations.
type TripDetail struct {
	Trip
	Line      *Line      `json:"line,omitempty"`
	Conductor *Conductor `json:"conductor,omitempty"`
}

// TripDraft is a trip creation request as received from the HTTP layer,
// before the validator has run. Required fields are pointers/strings so the
// validator can distinguish "absent" from a zero value and name the missing
// fields in its error.
type TripDraft struct {
	DirectionID *uuid.UUID
	LineID      *uuid.UUID
	ConductorID *uuid.UUID
	StartTime   string // "HH:MM", empty when absent
	EndTime     string // "HH:MM", empty when absent
	Date        *Date  // nil defaults to today
	Status      TripStatus
}

// TripUpdate is a tri-state partial update for a trip. Absent fields stay
// unchanged; explicit nulls clear the nullable references. The operating
// window validation of creation is deliberately not re-run on update.
type TripUpdate struct {
	StartTime   Patch[TimeOfDay]  `json:"startTime"`
	EndTime     Patch[TimeOfDay]  `json:"endTime"`
	Date        Patch[Date]       `json:"date"`
	Status      Patch[TripStatus] `json:"status"`
	ConductorID Patch[uuid.UUID]  `json:"conductorId"`
	LineID      Patch[uuid.UUID]  `json:"lineId"`
}

// TripFilter narrows trip listings.
type TripFilter struct {
	Date        *Date
	DirectionID *uuid.UUID
}

// MaxTripDuration is the cap on a single trip's length: ten hours.
const MaxTripDuration = 600
