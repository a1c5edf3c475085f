package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/log"
	"github.com/martinsuchenak/rentd/internal/model"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List all devices",
		Description: "List every device in the inventory with its tag and assigned location",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			reqURL := cmd.GetString("server") + "/api/devices"
			if tag := cmd.GetString("tag"); tag != "" {
				reqURL += "?tag=" + url.QueryEscape(tag)
			}

			resp, err := makeRequest("GET", reqURL, cmd.GetString("api-token"), nil)
			if err != nil {
				log.Error("Failed to connect to server for list", "error", err)
				return fmt.Errorf("failed to connect to server: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				log.Error("Server returned error for list", "status", resp.Status)
				return fmt.Errorf("server error: %s", resp.Status)
			}

			var devices []model.Device
			if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
				log.Error("Failed to decode device list response", "error", err)
				return err
			}

			log.Info("Listed devices successfully", "count", len(devices))
			printDevices(devices)
			return nil
		},
	}
}
