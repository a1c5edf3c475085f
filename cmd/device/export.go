package device

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/log"
)

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:        "export",
		Usage:       "Export an availability report",
		Description: "Download the availability report for a date range as XLSX or PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "Range start (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "Range end (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "format", Usage: "Report format (xlsx, pdf)", DefaultValue: "xlsx"},
			&cli.StringFlag{Name: "out", Usage: "Output file path"},
			&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: getDefaultServerURL()},
			&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"RENTD_API_TOKEN"}},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			start := cmd.GetString("start")
			end := cmd.GetString("end")
			format := cmd.GetString("format")

			query := url.Values{}
			query.Set("start", start)
			query.Set("end", end)
			query.Set("format", format)

			reqURL := cmd.GetString("server") + "/api/availability/export?" + query.Encode()
			resp, err := makeRequest("GET", reqURL, cmd.GetString("api-token"), nil)
			if err != nil {
				log.Error("Failed to connect to server for export", "error", err)
				return fmt.Errorf("failed to connect to server: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				log.Error("Server returned error for export", "status", resp.Status)
				return fmt.Errorf("server error: %s", string(body))
			}

			outPath := cmd.GetString("out")
			if outPath == "" {
				outPath = fmt.Sprintf("availability_%s_%s.%s", start, end, format)
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			written, err := io.Copy(out, resp.Body)
			if err != nil {
				return err
			}

			log.Info("Report exported", "path", outPath, "bytes", written)
			fmt.Printf("Report written to %s\n", outPath)
			return nil
		},
	}
}
