package domain

import (
	"time"

	"github.com/google/uuid"
)

// Line is a public-transit route identified by a short code, with an overall
// daily service window (earliest departure, latest return).
//
// OperatingStart and OperatingEnd are set or unset as a pair. When
// OperatingEnd is earlier in the day than OperatingStart the window wraps
// past midnight (e.g. opens 05:00, closes 02:00 the next day). A line with
// no window accepts trips at any time of day.
type Line struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	OperatingStart *TimeOfDay `json:"operatingStart,omitempty"`
	OperatingEnd   *TimeOfDay `json:"operatingEnd,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// HasWindow reports whether the line declares a complete operating window.
// A half-configured window (only one bound set) is treated as no window.
func (l Line) HasWindow() bool {
	return l.OperatingStart != nil && l.OperatingEnd != nil
}
