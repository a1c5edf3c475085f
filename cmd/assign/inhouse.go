package assign

import (
	"context"
	"fmt"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/log"
)

func InHouseCommand() *cli.Command {
	return &cli.Command{
		Name:        "in-house",
		Usage:       "Assign devices to an in-house pool",
		Description: "Assign the named devices to an existing in-house location, or create a new one",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "devices", Usage: "Device names (comma-separated)", Required: true},
			&cli.StringFlag{Name: "location-id", Usage: "Existing in-house location id"},
			&cli.StringFlag{Name: "name", Usage: "Name for a new in-house location"},
			&cli.StringFlag{Name: "start", Usage: "Occupancy start (YYYY-MM-DD), defaults to today"},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			locationID := cmd.GetString("location-id")
			name := cmd.GetString("name")
			if locationID == "" && name == "" {
				return fmt.Errorf("either --location-id or --name is required")
			}

			devices := parseList(cmd.GetString("devices"))
			payload := map[string]any{
				"devices":       devices,
				"location_id":   locationID,
				"location_name": name,
				"start":         cmd.GetString("start"),
			}

			log.Debug("Assigning devices in-house", "devices", len(devices), "location_id", locationID, "name", name)
			return postAssignment(cmd.GetString("server")+"/api/assignments/in-house", cmd.GetString("api-token"), payload)
		},
	}
}
