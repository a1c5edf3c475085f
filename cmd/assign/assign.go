package assign

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/config"
	"github.com/martinsuchenak/rentd/internal/model"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		ClientCommand(),
		InHouseCommand(),
	}
}

func getDefaultServerURL() string {
	cfg := config.Load()
	if cfg.ListenAddr == "" {
		return "http://localhost:8080"
	}
	return "http://localhost" + cfg.ListenAddr
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// postAssignment sends the request and renders the aggregate outcome. A 207
// response is a partial success, not an error.
func postAssignment(url, token string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest("POST", url, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", string(body))
	}

	var result model.AssignmentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	if result.FullSuccess() {
		fmt.Printf("Assigned %d devices to location %s\n", result.Succeeded, result.LocationID)
	} else {
		fmt.Printf("Assigned %d of %d devices to location %s\n", result.Succeeded, result.Requested, result.LocationID)
		fmt.Printf("Failed: %s\n", strings.Join(result.Failures, ", "))
	}
	return nil
}
