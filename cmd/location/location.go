package location

import (
	"fmt"
	"net/http"
	"time"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/config"
	"github.com/martinsuchenak/rentd/internal/model"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		ListCommand(),
	}
}

func getDefaultServerURL() string {
	cfg := config.Load()
	if cfg.ListenAddr == "" {
		return "http://localhost:8080"
	}
	return "http://localhost" + cfg.ListenAddr
}

func makeRequest(method, url, token string) (*http.Response, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return client.Do(req)
}

func printLocations(locations []model.Location) {
	if len(locations) == 0 {
		fmt.Println("No locations found")
		return
	}
	for _, loc := range locations {
		window := loc.StartDate
		if loc.EndDate != "" {
			window += " to " + loc.EndDate
		} else if loc.StartDate != "" {
			window += " (open-ended)"
		}
		fmt.Printf("%s\t%s\t%s\t%d devices\t%s\n", loc.ID, loc.Name, loc.Type, loc.Units, window)
	}
}
