package diag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/config"
	"github.com/martinsuchenak/rentd/internal/log"
	"github.com/martinsuchenak/rentd/internal/store"
)

// Command dumps the raw property names and types of a few device records.
// Useful when availability queries come back empty because a property was
// renamed in the external database.
func Command() *cli.Command {
	return &cli.Command{
		Name:        "diag",
		Usage:       "Inspect raw device record fields",
		Description: "Show the property names and types the external store exposes on sample device records",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Number of records to inspect", DefaultValue: 5},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			reqURL := fmt.Sprintf("%s/api/diagnostics/fields?limit=%d", cmd.GetString("server"), cmd.GetInt("limit"))

			client := &http.Client{Timeout: 30 * time.Second}
			req, err := http.NewRequest("GET", reqURL, nil)
			if err != nil {
				return err
			}
			if token := cmd.GetString("api-token"); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := client.Do(req)
			if err != nil {
				log.Error("Failed to connect to server for diagnostics", "error", err)
				return fmt.Errorf("failed to connect to server: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				log.Error("Server returned error for diagnostics", "status", resp.Status)
				return fmt.Errorf("server error: %s", resp.Status)
			}

			var records []store.RecordFields
			if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
				return err
			}

			for _, record := range records {
				fmt.Printf("%s (%s)\n", record.Name, record.ID)

				names := make([]string, 0, len(record.Fields))
				for name := range record.Fields {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("  %-30s %s\n", name, record.Fields[name])
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func getDefaultServerURL() string {
	cfg := config.Load()
	if cfg.ListenAddr == "" {
		return "http://localhost:8080"
	}
	return "http://localhost" + cfg.ListenAddr
}
