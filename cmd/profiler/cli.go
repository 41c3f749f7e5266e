package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/MelvilleC99/profiler"
	pgin "github.com/MelvilleC99/profiler/gin"
)

// Dependencies holds the wired application services passed to commands.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Jobs     profiler.JobService
	Personas profiler.PersonaService
	Runner   profiler.JobRunner
	Server   *pgin.Server
}

// CLI defines the command-line interface structure.
type CLI struct {
	DB string `help:"SQLite database path. Overrides PROFILER_DB."`

	Scrape ScrapeCmd `cmd:"" help:"Scrape one or more company websites and extract profiles."`
	Serve  ServeCmd  `cmd:"" help:"Serve the scrape and persona HTTP API."`
}
