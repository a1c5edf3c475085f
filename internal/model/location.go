package model

// LocationType is the closed set of location kinds.
type LocationType string

const (
	LocationClient  LocationType = "Client"
	LocationInHouse LocationType = "In House"
)

// Location is either a time-boxed client engagement or an open-ended in-house
// pool that devices can be assigned to. Dates are ISO calendar dates; an empty
// string means the date is not set. In-house locations conventionally have no
// end date.
type Location struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      LocationType `json:"type"`
	StartDate string       `json:"start_date,omitempty"`
	EndDate   string       `json:"end_date,omitempty"`
	Units     int          `json:"units"` // informational device count
}
