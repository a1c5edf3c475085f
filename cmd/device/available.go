package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/inventory"
	"github.com/martinsuchenak/rentd/internal/log"
)

func AvailableCommand() *cli.Command {
	return &cli.Command{
		Name:        "available",
		Usage:       "Query device availability for a date range",
		Description: "List devices free to rent between two dates, with booking reasons for the rest",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "Range start (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "Range end (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.BoolFlag{Name: "all", Usage: "Include booked devices with their reasons"},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			query := url.Values{}
			query.Set("start", cmd.GetString("start"))
			query.Set("end", cmd.GetString("end"))
			if tag := cmd.GetString("tag"); tag != "" {
				query.Set("tag", tag)
			}

			reqURL := cmd.GetString("server") + "/api/availability?" + query.Encode()
			resp, err := makeRequest("GET", reqURL, cmd.GetString("api-token"), nil)
			if err != nil {
				log.Error("Failed to connect to server for availability", "error", err)
				return fmt.Errorf("failed to connect to server: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				log.Error("Server returned error for availability", "status", resp.Status)
				return fmt.Errorf("server error: %s", resp.Status)
			}

			var report inventory.Report
			if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
				log.Error("Failed to decode availability response", "error", err)
				return err
			}

			printReport(report, cmd.GetBool("all"))
			return nil
		},
	}
}
