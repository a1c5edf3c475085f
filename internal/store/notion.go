package store

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/rentd/internal/model"
	"github.com/martinsuchenak/rentd/internal/notion"
)

// Notion is the real store, backed by the hosted database API.
type Notion struct {
	client      *notion.Client
	schema      notion.Schema
	devicesDB   string
	locationsDB string
}

func NewNotion(client *notion.Client, schema notion.Schema, devicesDB, locationsDB string) *Notion {
	return &Notion{
		client:      client,
		schema:      schema,
		devicesDB:   devicesDB,
		locationsDB: locationsDB,
	}
}

func (n *Notion) ListDevices(ctx context.Context) ([]model.Device, error) {
	pages, err := n.client.QueryDatabase(ctx, n.devicesDB, nil)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	devices := make([]model.Device, 0, len(pages))
	for _, page := range pages {
		devices = append(devices, n.schema.Device(page))
	}
	return devices, nil
}

func (n *Notion) ListLocations(ctx context.Context, locType model.LocationType) ([]model.Location, error) {
	var filter map[string]any
	if locType != "" {
		filter = notion.SelectEqualsFilter(n.schema.LocationType, string(locType))
	}

	pages, err := n.client.QueryDatabase(ctx, n.locationsDB, filter)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	locations := make([]model.Location, 0, len(pages))
	for _, page := range pages {
		locations = append(locations, n.schema.Location(page))
	}
	return locations, nil
}

func (n *Notion) CreateLocation(ctx context.Context, loc model.Location) (string, error) {
	id, err := n.client.CreatePage(ctx, n.locationsDB, n.schema.LocationProperties(loc))
	if err != nil {
		return "", fmt.Errorf("creating location %q: %w", loc.Name, err)
	}
	return id, nil
}

func (n *Notion) SetDeviceLocation(ctx context.Context, deviceID, locationID string) error {
	props := map[string]any{
		n.schema.DeviceLocations: notion.RelationValue(locationID),
	}
	if err := n.client.UpdatePage(ctx, deviceID, props); err != nil {
		return fmt.Errorf("assigning device %s: %w", deviceID, err)
	}
	return nil
}

func (n *Notion) UpdateLocationStart(ctx context.Context, locationID, startDate string) error {
	props := map[string]any{
		n.schema.LocationStart: notion.DateStartValue(startDate),
	}
	if err := n.client.UpdatePage(ctx, locationID, props); err != nil {
		return fmt.Errorf("updating location %s start date: %w", locationID, err)
	}
	return nil
}

// FieldNames reports the raw property names and types of up to limit device
// records, for diagnosing schema drift in the external database.
func (n *Notion) FieldNames(ctx context.Context, limit int) ([]RecordFields, error) {
	pages, err := n.client.QueryDatabase(ctx, n.devicesDB, nil)
	if err != nil {
		return nil, fmt.Errorf("listing device fields: %w", err)
	}
	if limit > 0 && len(pages) > limit {
		pages = pages[:limit]
	}

	records := make([]RecordFields, 0, len(pages))
	for _, page := range pages {
		fields := make(map[string]string, len(page.Properties))
		for name, prop := range page.Properties {
			fields[name] = prop.Type
		}
		records = append(records, RecordFields{
			ID:     page.ID,
			Name:   page.TitleText(n.schema.DeviceName, model.Unnamed),
			Fields: fields,
		})
	}
	return records, nil
}
