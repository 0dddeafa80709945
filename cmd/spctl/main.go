package main

import (
	"github.com/joho/godotenv"

	"github.com/ezeqja22/sciencepioneers-cli/internal/client/cli"
	"github.com/ezeqja22/sciencepioneers-cli/internal/sentry"
)

// ServerAddr and Version are set via ldflags during release builds.
// e.g. -X main.ServerAddr=https://api.sciencepioneers.com -X main.Version=1.2.0
var (
	ServerAddr = "http://localhost:8000"
	Version    = "dev"
)

func main() {
	// Optional .env for SPCTL_SERVER, SPCTL_TOKEN, SENTRY_DSN.
	_ = godotenv.Load()

	sentry.Init(Version)
	defer sentry.Flush()

	cli.Init(ServerAddr, Version)
	cli.Execute()
}
