package main

import (
	"fmt"
)

// ServeCmd runs the HTTP API server.
type ServeCmd struct {
	Addr      string `help:"Listen address." default:":8080"`
	LLM       string `help:"Extraction model: openai or gemini." default:"openai" enum:"openai,gemini"`
	Artifacts string `help:"Directory for raw HTML, aggregate and profile artifacts."`
}

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "listening on %s\n", c.Addr)
	return deps.Server.ListenAndServe(c.Addr)
}
