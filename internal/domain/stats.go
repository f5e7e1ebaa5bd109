package domain

// StatBucket is one group in an aggregate count, keyed by whatever the
// grouping dimension produces (badge number, hour of day, vehicle type,
// line code).
type StatBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CheckInStats are the daily dispatch aggregates: how many check-ins were
// recorded on a date, grouped along the four reporting dimensions. Computed
// in a single pass per request; nothing is retained between requests.
type CheckInStats struct {
	Date          Date         `json:"date"`
	Total         int          `json:"total"`
	ByConductor   []StatBucket `json:"byConductor"`
	ByHour        []StatBucket `json:"byHour"`
	ByVehicleType []StatBucket `json:"byVehicleType"`
	ByLine        []StatBucket `json:"byLine"`
}
