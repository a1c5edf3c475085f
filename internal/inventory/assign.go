package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/martinsuchenak/rentd/internal/log"
	"github.com/martinsuchenak/rentd/internal/model"
	"github.com/martinsuchenak/rentd/internal/store"
)

var (
	ErrEmptyClientName   = errors.New("client name must not be empty")
	ErrEmptyLocationName = errors.New("location name must not be empty")
)

// IsValidationError reports whether err is caller input rejected before any
// external call was made, as opposed to a write or transport failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyClientName) || errors.Is(err, ErrEmptyLocationName)
}

// AssignToClient creates a new client location spanning [start, end] and
// points each named device at it. deviceNames refer to the snapshot by
// display name, which is the contract the dashboards use. A returned error
// means nothing was assigned; partial failure is reported through the result
// instead.
func AssignToClient(ctx context.Context, st store.Store, deviceNames []string, clientName, start, end string, snapshot []model.Device) (model.AssignmentResult, error) {
	if strings.TrimSpace(clientName) == "" {
		return model.AssignmentResult{}, ErrEmptyClientName
	}

	locationID, err := st.CreateLocation(ctx, model.Location{
		Name:      clientName,
		Type:      model.LocationClient,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return model.AssignmentResult{}, fmt.Errorf("creating client location: %w", err)
	}

	log.Info("Client location created", "name", clientName, "id", locationID, "start", start, "end", end)
	return assignDevices(ctx, st, deviceNames, locationID, snapshot), nil
}

// AssignToInHouse assigns the named devices to an in-house location. With a
// locationID the existing location is reused and its start date moved to
// start first; a failed move is logged but does not stop the device writes.
// Without a locationID a new open-ended location named newName is created.
func AssignToInHouse(ctx context.Context, st store.Store, deviceNames []string, locationID, newName, start string, snapshot []model.Device) (model.AssignmentResult, error) {
	if locationID == "" {
		if strings.TrimSpace(newName) == "" {
			return model.AssignmentResult{}, ErrEmptyLocationName
		}

		id, err := st.CreateLocation(ctx, model.Location{
			Name:      newName,
			Type:      model.LocationInHouse,
			StartDate: start,
		})
		if err != nil {
			return model.AssignmentResult{}, fmt.Errorf("creating in-house location: %w", err)
		}
		log.Info("In-house location created", "name", newName, "id", id, "start", start)
		locationID = id
	} else if err := st.UpdateLocationStart(ctx, locationID, start); err != nil {
		log.Warn("Failed to move in-house start date", "location_id", locationID, "start", start, "error", err)
	}

	return assignDevices(ctx, st, deviceNames, locationID, snapshot), nil
}

// assignDevices writes the location relation onto each device independently.
// One failed write never aborts the rest; the store offers no multi-record
// transaction, so the aggregate counts are the only outcome signal. Display
// names are not unique, so one name may cover several devices; a name counts
// as succeeded only when every device bearing it was written.
func assignDevices(ctx context.Context, st store.Store, deviceNames []string, locationID string, snapshot []model.Device) model.AssignmentResult {
	result := model.AssignmentResult{
		LocationID: locationID,
		Requested:  len(deviceNames),
	}

	for _, name := range deviceNames {
		matches := lookupByName(snapshot, name)
		if len(matches) == 0 {
			log.Warn("Device not in snapshot", "name", name)
			result.Failures = append(result.Failures, name)
			continue
		}

		failed := false
		for _, device := range matches {
			if err := st.SetDeviceLocation(ctx, device.ID, locationID); err != nil {
				log.Error("Failed to assign device", "name", name, "id", device.ID, "error", err)
				failed = true
			}
		}
		if failed {
			result.Failures = append(result.Failures, name)
			continue
		}
		result.Succeeded++
	}

	log.Info("Assignment finished", "location_id", locationID, "succeeded", result.Succeeded, "requested", result.Requested)
	return result
}

func lookupByName(devices []model.Device, name string) []model.Device {
	var matches []model.Device
	for _, d := range devices {
		if d.Name == name {
			matches = append(matches, d)
		}
	}
	return matches
}
