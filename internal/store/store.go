package store

import (
	"context"
	"errors"

	"github.com/martinsuchenak/rentd/internal/model"
)

var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrLocationNotFound = errors.New("location not found")
)

// Store is the external inventory the system reads snapshots from and issues
// targeted writes against. Reads and writes are not transactional and the
// store is shared with other operators; a location edited between a read and
// a write simply wins, there is no version check.
type Store interface {
	// ListDevices returns a normalized snapshot of every device.
	ListDevices(ctx context.Context) ([]model.Device, error)

	// ListLocations returns locations, optionally filtered by type.
	ListLocations(ctx context.Context, locType model.LocationType) ([]model.Location, error)

	// CreateLocation creates a location and returns its store-assigned id.
	CreateLocation(ctx context.Context, loc model.Location) (string, error)

	// SetDeviceLocation points the device's location relation at one location.
	SetDeviceLocation(ctx context.Context, deviceID, locationID string) error

	// UpdateLocationStart moves a location's start date.
	UpdateLocationStart(ctx context.Context, locationID, startDate string) error
}

// FieldLister is an optional capability: stores backed by a schemaless
// external database can report the raw property names and types of sample
// records for diagnostics.
type FieldLister interface {
	FieldNames(ctx context.Context, limit int) ([]RecordFields, error)
}

// RecordFields describes the raw properties of one record.
type RecordFields struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"` // property name -> property type
}
