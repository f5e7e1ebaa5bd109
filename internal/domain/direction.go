package domain

import (
	"time"

	"github.com/google/uuid"
)

// Direction ("sens") is one of the directional variants of a Line, typically
// identified by its terminus. Trips are scheduled against a Direction, not
// directly against a Line.
type Direction struct {
	ID        uuid.UUID `json:"id"`
	LineID    uuid.UUID `json:"lineId"`
	Label     string    `json:"label"`
	Ordinal   int       `json:"ordinal"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
