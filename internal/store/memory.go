package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/martinsuchenak/rentd/internal/model"
)

// Memory is an in-process store used by demo mode and tests. It mimics the
// external database's rollup behavior: a device's window is resolved from its
// first related location at read time.
type Memory struct {
	mu        sync.Mutex
	devices   map[string]model.Device
	locations map[string]model.Location
	order     []string // device insertion order, for stable listings
}

func NewMemory() *Memory {
	return &Memory{
		devices:   make(map[string]model.Device),
		locations: make(map[string]model.Location),
	}
}

// AddDevice inserts a device, assigning an id when absent.
func (m *Memory) AddDevice(d model.Device) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID == "" {
		d.ID = generateID()
	}
	if d.Name == "" {
		d.Name = model.Unnamed
	}
	if d.Tag == "" {
		d.Tag = model.NoTag
	}
	m.devices[d.ID] = d
	m.order = append(m.order, d.ID)
	return d.ID
}

// AddLocation inserts a location, assigning an id when absent.
func (m *Memory) AddLocation(loc model.Location) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if loc.ID == "" {
		loc.ID = generateID()
	}
	m.locations[loc.ID] = loc
	return loc.ID
}

func (m *Memory) ListDevices(ctx context.Context) ([]model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	devices := make([]model.Device, 0, len(m.order))
	for _, id := range m.order {
		devices = append(devices, m.resolve(m.devices[id]))
	}
	return devices, nil
}

// resolve rolls the first related location's fields up onto the device.
func (m *Memory) resolve(d model.Device) model.Device {
	d.LocationType = ""
	d.StartDate = ""
	d.EndDate = ""
	if len(d.LocationIDs) == 0 {
		return d
	}
	if loc, ok := m.locations[d.LocationIDs[0]]; ok {
		d.LocationType = loc.Type
		d.StartDate = loc.StartDate
		d.EndDate = loc.EndDate
	}
	return d
}

func (m *Memory) ListLocations(ctx context.Context, locType model.LocationType) ([]model.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	locations := make([]model.Location, 0, len(m.locations))
	for _, loc := range m.locations {
		if locType != "" && loc.Type != locType {
			continue
		}
		loc.Units = m.unitsLocked(loc.ID)
		locations = append(locations, loc)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (m *Memory) unitsLocked(locationID string) int {
	count := 0
	for _, d := range m.devices {
		if len(d.LocationIDs) > 0 && d.LocationIDs[0] == locationID {
			count++
		}
	}
	return count
}

func (m *Memory) CreateLocation(ctx context.Context, loc model.Location) (string, error) {
	return m.AddLocation(loc), nil
}

func (m *Memory) SetDeviceLocation(ctx context.Context, deviceID, locationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	device, ok := m.devices[deviceID]
	if !ok {
		return ErrDeviceNotFound
	}
	if _, ok := m.locations[locationID]; !ok {
		return ErrLocationNotFound
	}
	device.LocationIDs = []string{locationID}
	m.devices[deviceID] = device
	return nil
}

func (m *Memory) UpdateLocationStart(ctx context.Context, locationID, startDate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, ok := m.locations[locationID]
	if !ok {
		return ErrLocationNotFound
	}
	loc.StartDate = startDate
	m.locations[locationID] = loc
	return nil
}

func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// SeedDemo loads a small inventory so the server is usable without
// credentials for the external store.
func (m *Memory) SeedDemo() {
	pool := m.AddLocation(model.Location{Name: "Office Pool", Type: model.LocationInHouse, StartDate: "2025-01-07"})
	client := m.AddLocation(model.Location{Name: "Trade Fair Berlin", Type: model.LocationClient, StartDate: "2025-06-01", EndDate: "2025-06-10"})

	m.AddDevice(model.Device{Name: "iPhone 15 Pro", Tag: "iPhone"})
	m.AddDevice(model.Device{Name: "iPad Air 11", Tag: "iPad", LocationIDs: []string{client}})
	m.AddDevice(model.Device{Name: "Galaxy Tab S9", Tag: "Tablet", LocationIDs: []string{pool}})
	m.AddDevice(model.Device{Name: "Pixel 8", Tag: "Android"})
}
