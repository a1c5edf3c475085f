package assign

import (
	"context"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/log"
)

func ClientCommand() *cli.Command {
	return &cli.Command{
		Name:        "client",
		Usage:       "Assign devices to a new client engagement",
		Description: "Create a client location spanning the rental window and assign the named devices to it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "devices", Usage: "Device names (comma-separated)", Required: true},
			&cli.StringFlag{Name: "name", Usage: "Client engagement name", Required: true},
			&cli.StringFlag{Name: "start", Usage: "Rental start (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "Rental end (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			devices := parseList(cmd.GetString("devices"))
			payload := map[string]any{
				"devices":     devices,
				"client_name": cmd.GetString("name"),
				"start":       cmd.GetString("start"),
				"end":         cmd.GetString("end"),
			}

			log.Debug("Assigning devices to client", "devices", len(devices), "client", cmd.GetString("name"))
			return postAssignment(cmd.GetString("server")+"/api/assignments/client", cmd.GetString("api-token"), payload)
		},
	}
}
