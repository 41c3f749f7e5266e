package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MelvilleC99/profiler"
	"golang.org/x/sync/errgroup"
)

// ScrapeCmd crawls company websites and persists extracted profiles.
type ScrapeCmd struct {
	URLs []string `arg:"" help:"Company website URLs to profile."`

	User        string `help:"User ID to record on the jobs." default:"cli"`
	Browser     bool   `help:"Fetch with a local headless browser instead of the ScraperAPI proxy."`
	LLM         string `help:"Extraction model: openai or gemini." default:"openai" enum:"openai,gemini"`
	Template    string `help:"Path to a YAML profile template. Defaults to the built-in template."`
	Artifacts   string `help:"Directory for raw HTML, aggregate and profile artifacts."`
	Strict      bool   `help:"Fail the job on malformed model output instead of salvaging."`
	Concurrency int    `help:"Number of sites to profile in parallel." default:"2"`
	JSON        bool   `help:"Print completed profiles as JSON to stdout."`
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(limit)

	var mu sync.Mutex // guards stdout
	for _, url := range c.URLs {
		g.Go(func() error {
			job, err := deps.Runner.Run(ctx, url, c.User)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(deps.Stderr, "%s: %s\n", url, profiler.ErrorMessage(err))
				return err
			}
			return c.report(deps, job)
		})
	}
	return g.Wait()
}

func (c *ScrapeCmd) report(deps *Dependencies, job *profiler.Job) error {
	if c.JSON {
		buf, err := json.MarshalIndent(job.Profile, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(buf))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s: job %s %s", job.URL, job.ID, job.Status)
	if job.Status == profiler.JobStatusCompleted {
		fmt.Fprintf(deps.Stdout, " (%.0f%% complete)", job.Verdict.CompletionRate*100)
		if !job.Verdict.IsValid {
			fmt.Fprintf(deps.Stdout, ": %s", job.Verdict.Message)
		}
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
