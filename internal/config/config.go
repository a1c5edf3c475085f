package config

import (
	"errors"

	"github.com/paularlott/cli"
)

// Config carries everything the server needs to reach the external store.
// There are no embedded credential or database-id defaults; they come from
// flags, the environment, or a .env file.
type Config struct {
	ListenAddr    string
	NotionToken   string
	NotionVersion string
	DevicesDB     string
	LocationsDB   string
	APIAuthToken  string
	SchemaFile    string
	LogLevel      string
	LogFormat     string
	Demo          bool
}

var (
	listenAddr    string
	notionToken   string
	notionVersion string
	devicesDB     string
	locationsDB   string
	apiAuthToken  string
	schemaFile    string
	logLevel      string
	logFormat     string
	demo          bool
)

func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:         "addr",
			Usage:        "Server listen address",
			EnvVars:      []string{"RENTD_LISTEN_ADDR"},
			DefaultValue: ":8080",
			AssignTo:     &listenAddr,
		},
		&cli.StringFlag{
			Name:     "notion-token",
			Usage:    "Bearer token for the external store",
			EnvVars:  []string{"RENTD_NOTION_TOKEN", "NOTION_TOKEN"},
			AssignTo: &notionToken,
		},
		&cli.StringFlag{
			Name:         "notion-version",
			Usage:        "External store API version header",
			EnvVars:      []string{"RENTD_NOTION_VERSION"},
			DefaultValue: "2022-06-28",
			AssignTo:     &notionVersion,
		},
		&cli.StringFlag{
			Name:     "devices-db",
			Usage:    "Device collection id",
			EnvVars:  []string{"RENTD_DEVICES_DB"},
			AssignTo: &devicesDB,
		},
		&cli.StringFlag{
			Name:     "locations-db",
			Usage:    "Location collection id",
			EnvVars:  []string{"RENTD_LOCATIONS_DB"},
			AssignTo: &locationsDB,
		},
		&cli.StringFlag{
			Name:     "api-token",
			Usage:    "API bearer token",
			EnvVars:  []string{"RENTD_API_TOKEN"},
			AssignTo: &apiAuthToken,
		},
		&cli.StringFlag{
			Name:     "schema-file",
			Usage:    "YAML file overriding store property names",
			EnvVars:  []string{"RENTD_SCHEMA_FILE"},
			AssignTo: &schemaFile,
		},
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (debug, info, warn, error)",
			EnvVars:      []string{"RENTD_LOG_LEVEL"},
			DefaultValue: "info",
			AssignTo:     &logLevel,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			EnvVars:      []string{"RENTD_LOG_FORMAT"},
			DefaultValue: "console",
			AssignTo:     &logFormat,
		},
		&cli.BoolFlag{
			Name:     "demo",
			Usage:    "Serve a seeded in-memory inventory instead of the external store",
			EnvVars:  []string{"RENTD_DEMO"},
			AssignTo: &demo,
		},
	}
}

func Load() *Config {
	return &Config{
		ListenAddr:    listenAddr,
		NotionToken:   notionToken,
		NotionVersion: notionVersion,
		DevicesDB:     devicesDB,
		LocationsDB:   locationsDB,
		APIAuthToken:  apiAuthToken,
		SchemaFile:    schemaFile,
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		Demo:          demo,
	}
}

// Validate checks that the external store is reachable in principle. Demo
// mode needs no credentials.
func (c *Config) Validate() error {
	if c.Demo {
		return nil
	}
	if c.NotionToken == "" {
		return errors.New("notion-token is required")
	}
	if c.DevicesDB == "" {
		return errors.New("devices-db is required")
	}
	if c.LocationsDB == "" {
		return errors.New("locations-db is required")
	}
	return nil
}

// IsAPIAuthEnabled checks if API authentication is configured
func (c *Config) IsAPIAuthEnabled() bool {
	return c.APIAuthToken != ""
}
