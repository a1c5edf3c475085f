package location

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
		Usage:       "List locations",
		Description: "List locations, optionally filtered by type (Client or In House)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "Filter by type (Client, In House)"},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			reqURL := cmd.GetString("server") + "/api/locations"
			if locType := cmd.GetString("type"); locType != "" {
				reqURL += "?type=" + url.QueryEscape(locType)
			}

			resp, err := makeRequest("GET", reqURL, cmd.GetString("api-token"))
			if err != nil {
				log.Error("Failed to connect to server for location list", "error", err)
				return fmt.Errorf("failed to connect to server: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				log.Error("Server returned error for location list", "status", resp.Status)
				return fmt.Errorf("server error: %s", resp.Status)
			}

			var locations []model.Location
			if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
				log.Error("Failed to decode location list response", "error", err)
				return err
			}

			log.Info("Listed locations successfully", "count", len(locations))
			printLocations(locations)
			return nil
		},
	}
}
