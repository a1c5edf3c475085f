package notion

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/martinsuchenak/rentd/internal/model"
)

// Schema names the store properties each entity field is read from or
// written to. The store's schemas drifted over time (a "Locations_demo"
// relation with an emoji prefix, select vs multi-select tags), so the
// mapping is one configurable value instead of forked extraction code.
type Schema struct {
	DeviceName         string `yaml:"device_name"`
	DeviceTag          string `yaml:"device_tag"`
	DeviceLocations    string `yaml:"device_locations"`
	DeviceLocationType string `yaml:"device_location_type"`
	DeviceStartDate    string `yaml:"device_start_date"`
	DeviceEndDate      string `yaml:"device_end_date"`

	LocationName  string `yaml:"location_name"`
	LocationType  string `yaml:"location_type"`
	LocationStart string `yaml:"location_start"`
	LocationEnd   string `yaml:"location_end"`
	LocationUnits string `yaml:"location_units"`
}

// DefaultSchema returns the production property names.
func DefaultSchema() Schema {
	return Schema{
		DeviceName:         "Name",
		DeviceTag:          "Tags",
		DeviceLocations:    "Locations",
		DeviceLocationType: "Location Type",
		DeviceStartDate:    "Start Date",
		DeviceEndDate:      "End Date",
		LocationName:       "Name",
		LocationType:       "Type",
		LocationStart:      "Start Date",
		LocationEnd:        "End Date",
		LocationUnits:      "Units",
	}
}

// LoadSchema overlays property names from a YAML file onto the defaults.
// An empty path returns the defaults unchanged.
func LoadSchema(path string) (Schema, error) {
	schema := DefaultSchema()
	if path == "" {
		return schema, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema, err
	}
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return schema, err
	}
	return schema, nil
}

// Device normalizes a raw page into a fully populated Device. Missing or
// mis-shaped properties resolve to the documented sentinels; normalization
// never fails, so one malformed record cannot abort a whole batch.
func (s Schema) Device(p Page) model.Device {
	return model.Device{
		ID:           p.ID,
		Name:         p.TitleText(s.DeviceName, model.Unnamed),
		Tag:          p.SelectName(s.DeviceTag, model.NoTag),
		LocationIDs:  p.RelationIDs(s.DeviceLocations),
		LocationType: model.LocationType(p.RollupSelectName(s.DeviceLocationType, "")),
		StartDate:    p.RollupDateStart(s.DeviceStartDate),
		EndDate:      p.RollupDateStart(s.DeviceEndDate),
	}
}

// Location normalizes a raw page into a Location.
func (s Schema) Location(p Page) model.Location {
	return model.Location{
		ID:        p.ID,
		Name:      p.TitleText(s.LocationName, model.Unnamed),
		Type:      model.LocationType(p.SelectName(s.LocationType, "")),
		StartDate: p.DateStart(s.LocationStart),
		EndDate:   p.DateStart(s.LocationEnd),
		Units:     int(p.NumberValue(s.LocationUnits, 0)),
	}
}

// LocationProperties builds the create-payload for a new location. The end
// date is omitted when empty, which is how open-ended in-house locations are
// represented.
func (s Schema) LocationProperties(loc model.Location) map[string]any {
	props := map[string]any{
		s.LocationName: TitleValue(loc.Name),
		s.LocationType: SelectValue(string(loc.Type)),
	}
	if loc.StartDate != "" {
		props[s.LocationStart] = DateStartValue(loc.StartDate)
	}
	if loc.EndDate != "" {
		props[s.LocationEnd] = DateStartValue(loc.EndDate)
	}
	return props
}
