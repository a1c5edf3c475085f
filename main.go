package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/paularlott/cli"

	"github.com/martinsuchenak/rentd/cmd/assign"
	"github.com/martinsuchenak/rentd/cmd/device"
	"github.com/martinsuchenak/rentd/cmd/diag"
	"github.com/martinsuchenak/rentd/cmd/location"
	"github.com/martinsuchenak/rentd/cmd/server"
	"github.com/martinsuchenak/rentd/internal/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	root := &cli.Command{
		Name:        "rentd",
		Usage:       "Device rental availability and assignment",
		Description: "Query which devices are free to rent for a date range and assign them to client engagements or in-house pools",
		Commands: []*cli.Command{
			server.Command(),
			diag.Command(),
			{
				Name:     "device",
				Usage:    "Device commands",
				Commands: device.Commands(),
			},
			{
				Name:     "location",
				Usage:    "Location commands",
				Commands: location.Commands(),
			},
			{
				Name:     "assign",
				Usage:    "Assignment commands",
				Commands: assign.Commands(),
			},
		},
	}

	if err := root.Execute(context.Background()); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
