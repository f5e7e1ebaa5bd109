package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryStop is one stop in an itinerary's ordered sequence.
// Position starts at 1 and is unique within the itinerary.
type ItineraryStop struct {
	Stop
	Position int `json:"position"`
}

// Itinerary ("trajet") is the ordered sequence of stops served by a
// Direction. A direction may carry several itineraries (e.g. a short-turn
// variant alongside the full run).
type Itinerary struct {
	ID          uuid.UUID       `json:"id"`
	DirectionID uuid.UUID       `json:"directionId"`
	Name        string          `json:"name"`
	Stops       []ItineraryStop `json:"stops,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
