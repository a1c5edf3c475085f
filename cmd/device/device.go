package device

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/config"
	"github.com/martinsuchenak/rentd/internal/inventory"
	"github.com/martinsuchenak/rentd/internal/model"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		ListCommand(),
		AvailableCommand(),
		ExportCommand(),
	}
}

func getDefaultServerURL() string {
	cfg := config.Load()
	if cfg.ListenAddr == "" {
		return "http://localhost:8080"
	}
	return "http://localhost" + cfg.ListenAddr
}

func makeRequest(method, url, token string, body *strings.Reader) (*http.Response, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, url, body)
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return client.Do(req)
}

func printDevices(devices []model.Device) {
	if len(devices) == 0 {
		fmt.Println("No devices found")
		return
	}
	for _, d := range devices {
		location := "-"
		if d.Assigned() {
			location = d.LocationIDs[0]
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Tag, location)
	}
}

func printReport(report inventory.Report, all bool) {
	available := report.AvailableDevices()
	fmt.Printf("%d of %d devices available %s to %s\n", len(available), len(report.Results), report.Start, report.End)
	for _, r := range report.Results {
		if !r.Available && !all {
			continue
		}
		status := "available"
		if !r.Available {
			status = "booked"
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", r.Device.Name, r.Device.Tag, status, r.Reason)
	}
}
