package notion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/martinsuchenak/rentd/internal/model"
)

func mustPage(t *testing.T, raw string) Page {
	t.Helper()
	var page Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		t.Fatalf("unmarshaling test page: %v", err)
	}
	return page
}

func TestDeviceWithAllFieldsMissing(t *testing.T) {
	page := mustPage(t, `{"id": "page1", "properties": {}}`)

	device := DefaultSchema().Device(page)
	if device.ID != "page1" {
		t.Errorf("expected id page1, got %q", device.ID)
	}
	if device.Name != model.Unnamed {
		t.Errorf("expected sentinel name, got %q", device.Name)
	}
	if device.Tag != model.NoTag {
		t.Errorf("expected sentinel tag, got %q", device.Tag)
	}
	if device.Assigned() {
		t.Error("expected no location refs")
	}
	if device.StartDate != "" || device.EndDate != "" {
		t.Errorf("expected empty dates, got %q / %q", device.StartDate, device.EndDate)
	}
}

func TestDeviceWithNilProperties(t *testing.T) {
	device := DefaultSchema().Device(Page{ID: "page2"})
	if device.Name != model.Unnamed || device.Tag != model.NoTag {
		t.Errorf("nil property map must normalize to sentinels, got %+v", device)
	}
}

func TestDeviceFullExtraction(t *testing.T) {
	page := mustPage(t, `{
		"id": "page3",
		"properties": {
			"Name": {"type": "title", "title": [{"text": {"content": "iPhone 15 Pro"}}]},
			"Tags": {"type": "select", "select": {"name": "iPhone"}},
			"Locations": {"type": "relation", "relation": [{"id": "loc1"}, {"id": "loc2"}]},
			"Location Type": {"type": "rollup", "rollup": {"type": "array", "array": [{"type": "select", "select": {"name": "Client"}}]}},
			"Start Date": {"type": "rollup", "rollup": {"type": "date", "date": {"start": "2025-06-01"}}},
			"End Date": {"type": "rollup", "rollup": {"type": "array", "array": [{"type": "date", "date": {"start": "2025-06-10"}}]}}
		}
	}`)

	device := DefaultSchema().Device(page)
	if device.Name != "iPhone 15 Pro" || device.Tag != "iPhone" {
		t.Errorf("unexpected name/tag: %+v", device)
	}
	if len(device.LocationIDs) != 2 || device.LocationIDs[0] != "loc1" {
		t.Errorf("relation order must be preserved, got %v", device.LocationIDs)
	}
	if device.LocationType != model.LocationClient {
		t.Errorf("expected rolled-up type Client, got %q", device.LocationType)
	}
	if device.StartDate != "2025-06-01" || device.EndDate != "2025-06-10" {
		t.Errorf("unexpected dates: %q / %q", device.StartDate, device.EndDate)
	}
}

func TestRollupFirstElementWins(t *testing.T) {
	// Two related locations: only the first one's date surfaces.
	page := mustPage(t, `{
		"id": "page4",
		"properties": {
			"Start Date": {"type": "rollup", "rollup": {"type": "array", "array": [
				{"type": "date", "date": {"start": "2025-01-01"}},
				{"type": "date", "date": {"start": "2030-01-01"}}
			]}}
		}
	}`)

	if got := page.RollupDateStart("Start Date"); got != "2025-01-01" {
		t.Errorf("expected first element to win, got %q", got)
	}
}

func TestRollupWrongKindResolvesToDefault(t *testing.T) {
	page := mustPage(t, `{
		"id": "page5",
		"properties": {
			"Start Date": {"type": "rollup", "rollup": {"type": "array", "array": [{"type": "number", "number": 7}]}},
			"End Date": {"type": "rollup", "rollup": {"type": "array", "array": []}}
		}
	}`)

	if got := page.RollupDateStart("Start Date"); got != "" {
		t.Errorf("non-date first element must resolve empty, got %q", got)
	}
	if got := page.RollupDateStart("End Date"); got != "" {
		t.Errorf("empty rollup array must resolve empty, got %q", got)
	}
}

func TestLocationExtraction(t *testing.T) {
	page := mustPage(t, `{
		"id": "loc1",
		"properties": {
			"Name": {"type": "title", "title": [{"text": {"content": "Office Pool"}}]},
			"Type": {"type": "select", "select": {"name": "In House"}},
			"Start Date": {"type": "date", "date": {"start": "2025-01-07"}},
			"Units": {"type": "number", "number": 4}
		}
	}`)

	loc := DefaultSchema().Location(page)
	if loc.Name != "Office Pool" || loc.Type != model.LocationInHouse {
		t.Errorf("unexpected location: %+v", loc)
	}
	if loc.StartDate != "2025-01-07" || loc.EndDate != "" {
		t.Errorf("expected open-ended window, got %q / %q", loc.StartDate, loc.EndDate)
	}
	if loc.Units != 4 {
		t.Errorf("expected 4 units, got %d", loc.Units)
	}
}

func TestLocationPropertiesOmitsEmptyDates(t *testing.T) {
	props := DefaultSchema().LocationProperties(model.Location{
		Name:      "Office Pool",
		Type:      model.LocationInHouse,
		StartDate: "2025-01-07",
	})

	if _, ok := props["End Date"]; ok {
		t.Error("open-ended location must not carry an end date property")
	}
	if _, ok := props["Start Date"]; !ok {
		t.Error("start date property missing")
	}
}

func TestLoadSchemaOverlay(t *testing.T) {
	// The demo database used an emoji-prefixed relation name.
	path := filepath.Join(t.TempDir(), "schema.yml")
	content := "device_locations: \"\U0001F4CD Locations_demo\"\ndevice_tag: Category\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing schema file: %v", err)
	}

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if schema.DeviceLocations != "\U0001F4CD Locations_demo" {
		t.Errorf("override not applied: %q", schema.DeviceLocations)
	}
	if schema.DeviceTag != "Category" {
		t.Errorf("override not applied: %q", schema.DeviceTag)
	}
	if schema.DeviceName != "Name" {
		t.Errorf("defaults must survive the overlay, got %q", schema.DeviceName)
	}
}

func TestLoadSchemaEmptyPathReturnsDefaults(t *testing.T) {
	schema, err := LoadSchema("")
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if schema != DefaultSchema() {
		t.Errorf("expected defaults, got %+v", schema)
	}
}
