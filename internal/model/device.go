package model

// Sentinels substituted by normalization when a field is missing or has an
// unexpected shape. The rest of the system can rely on every Device being
// fully populated.
const (
	Unnamed = "unnamed"
	NoTag   = "no tag"
)

// Device is a rentable physical unit tracked in the external store. The
// Location* fields are rolled up from the first related location; when
// LocationIDs is empty they are all unset and the device is always free.
type Device struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Tag          string       `json:"tag"`
	LocationIDs  []string     `json:"location_ids,omitempty"`
	LocationType LocationType `json:"location_type,omitempty"`
	StartDate    string       `json:"start_date,omitempty"` // ISO calendar date
	EndDate      string       `json:"end_date,omitempty"`
}

// Assigned reports whether the device references at least one location.
func (d Device) Assigned() bool {
	return len(d.LocationIDs) > 0
}

// DeviceFilter holds filter criteria for listing devices
type DeviceFilter struct {
	Tag string // Filter by tag, empty matches all
}

// Matches reports whether the device passes the filter.
func (f DeviceFilter) Matches(d Device) bool {
	return f.Tag == "" || d.Tag == f.Tag
}
