package domain

import (
	"encoding/json"
	"fmt"
)

// MinutesPerDay is the number of minutes in one operational day.
// All wall-clock arithmetic in this package is modular over it.
const MinutesPerDay = 1440

// TimeOfDay is a wall-clock time of day expressed as minutes since midnight,
// in [0, 1439]. It carries no date and no timezone — it is operational local
// time, exactly as printed on a driver's duty roster. The JSON representation
// is "HH:MM" (24-hour).
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string into a TimeOfDay.
// Hours must be 00–23 and minutes 00–59; anything else is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: hour must be 00-23, minute 00-59", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Minutes returns the raw minutes-since-midnight value.
func (t TimeOfDay) Minutes() int { return int(t) }

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// DurationTo returns the trip duration in minutes from t to end.
// When end is earlier in the day than t, the span is assumed to cross
// midnight once: (1440 - t) + end. No multi-day spans exist in the model.
// A result of zero means start and end are identical.
func (t TimeOfDay) DurationTo(end TimeOfDay) int {
	if end >= t {
		return int(end - t)
	}
	return (MinutesPerDay - int(t)) + int(end)
}

// MarshalJSON encodes the time as an "HH:MM" JSON string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" JSON string.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
