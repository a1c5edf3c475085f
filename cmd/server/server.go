package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/internal/api"
	"github.com/martinsuchenak/rentd/internal/config"
	"github.com/martinsuchenak/rentd/internal/log"
	"github.com/martinsuchenak/rentd/internal/metrics"
	"github.com/martinsuchenak/rentd/internal/notion"
	"github.com/martinsuchenak/rentd/internal/store"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "server",
		Usage:       "Start the Rentd server",
		Description: "Start the HTTP server exposing availability queries and assignments over the device inventory",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			log.Configure(cfg.LogLevel, cfg.LogFormat)

			if err := cfg.Validate(); err != nil {
				log.Error("Invalid configuration", "error", err)
				return err
			}
			log.Info("Configuration loaded", "listen_addr", cfg.ListenAddr, "demo", cfg.Demo)

			metrics.Init()

			// Pick the inventory backend
			var st store.Store
			if cfg.Demo {
				mem := store.NewMemory()
				mem.SeedDemo()
				st = mem
				log.Info("Inventory initialized", "backend", "memory", "mode", "demo")
			} else {
				schema, err := notion.LoadSchema(cfg.SchemaFile)
				if err != nil {
					log.Error("Failed to load schema file", "error", err, "path", cfg.SchemaFile)
					return err
				}
				client := notion.NewClient(cfg.NotionToken, cfg.NotionVersion)
				st = store.NewNotion(client, schema, cfg.DevicesDB, cfg.LocationsDB)
				log.Info("Inventory initialized", "backend", "notion", "devices_db", cfg.DevicesDB, "locations_db", cfg.LocationsDB)
			}

			// Create API handler
			apiHandler := api.NewHandler(st)

			// Setup HTTP routes
			mux := http.NewServeMux()
			apiHandler.RegisterRoutes(mux)
			mux.Handle("GET /metrics", metrics.Handler())

			// Apply middleware
			var handler http.Handler = mux
			if cfg.IsAPIAuthEnabled() {
				handler = api.AuthMiddleware(cfg.APIAuthToken, handler)
			}
			handler = api.SecurityHeadersMiddleware(handler)

			server := &http.Server{
				Addr:    cfg.ListenAddr,
				Handler: handler,
			}

			// Handle shutdown gracefully
			go func() {
				sigChan := make(chan os.Signal, 1)
				signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
				<-sigChan
				log.Info("Shutting down server...")
				server.Close()
			}()

			log.Info("Starting Rentd server", "addr", cfg.ListenAddr)
			log.Info("API available", "url", "http://localhost"+cfg.ListenAddr+"/api/")
			log.Info("Metrics available", "url", "http://localhost"+cfg.ListenAddr+"/metrics")
			if cfg.IsAPIAuthEnabled() {
				log.Info("API authentication enabled")
			}

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Server error", "error", err)
				return err
			}

			log.Info("Server stopped")
			return nil
		},
	}
}
