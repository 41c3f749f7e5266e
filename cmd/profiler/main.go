package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MelvilleC99/profiler"
	"github.com/MelvilleC99/profiler/crawl"
	"github.com/MelvilleC99/profiler/etree"
	"github.com/MelvilleC99/profiler/extract"
	"github.com/MelvilleC99/profiler/fs"
	"github.com/MelvilleC99/profiler/gemini"
	pgin "github.com/MelvilleC99/profiler/gin"
	"github.com/MelvilleC99/profiler/goquery"
	popenai "github.com/MelvilleC99/profiler/openai"
	"github.com/MelvilleC99/profiler/rod"
	"github.com/MelvilleC99/profiler/scraperapi"
	pslog "github.com/MelvilleC99/profiler/slog"
	"github.com/MelvilleC99/profiler/sqlite"
	"github.com/MelvilleC99/profiler/yaml"
	"github.com/alecthomas/kong"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	JobService     profiler.JobService
	PersonaService profiler.PersonaService

	fetcher profiler.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.fetcher != nil {
		if err := m.fetcher.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("profiler"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'profiler --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PROFILER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.JobService = sqlite.NewJobService(m.DB)
	m.PersonaService = sqlite.NewPersonaService(m.DB)
	deps.Jobs = m.JobService
	deps.Personas = m.PersonaService

	switch cmd {
	case "scrape":
		runner, err := m.buildRunner(ctx, logger, runnerConfig{
			browser:      cli.Scrape.Browser,
			llm:          cli.Scrape.LLM,
			artifactsDir: cli.Scrape.Artifacts,
			templatePath: cli.Scrape.Template,
			strict:       cli.Scrape.Strict,
		}, stderr)
		if err != nil {
			return err
		}
		deps.Runner = runner
	case "serve":
		// The HTTP API always uses strict parsing: a webhook caller
		// can retry, so a salvaged half-profile is worse than an error.
		runner, err := m.buildRunner(ctx, logger, runnerConfig{
			browser:      false,
			llm:          cli.Serve.LLM,
			artifactsDir: cli.Serve.Artifacts,
			strict:       true,
		}, stderr)
		if err != nil {
			return err
		}
		deps.Server = pgin.NewServer(runner, m.JobService, m.PersonaService, logger)
	}

	return kongCtx.Run(deps)
}

// runnerConfig collects the per-command knobs for pipeline construction.
type runnerConfig struct {
	browser      bool
	llm          string
	artifactsDir string
	templatePath string
	strict       bool
}

// buildRunner wires a complete pipeline: fetcher, discoverer, cleaner,
// completer, extractor and stores.
func (m *Main) buildRunner(ctx context.Context, logger *slog.Logger, cfg runnerConfig, stderr io.Writer) (*crawl.Runner, error) {
	fetcher, err := m.buildFetcher(cfg.browser, stderr)
	if err != nil {
		return nil, err
	}
	m.fetcher = fetcher

	completer, err := buildCompleter(ctx, cfg.llm, stderr)
	if err != nil {
		return nil, err
	}

	template := profiler.DefaultTemplate()
	if cfg.templatePath != "" {
		template, err = yaml.LoadTemplateFile(cfg.templatePath)
		if err != nil {
			return nil, err
		}
	}

	strategy := extract.ParseSalvage
	if cfg.strict {
		strategy = extract.ParseStrict
	}

	var artifacts profiler.ArtifactWriter
	if cfg.artifactsDir != "" {
		artifacts = fs.NewArtifactStore(cfg.artifactsDir)
	}

	return &crawl.Runner{
		Crawler: &crawl.Crawler{
			Fetcher:    pslog.NewLoggingFetcher(fetcher, logger),
			Discoverer: goquery.NewDiscoverer(),
			Pacer:      crawl.NewDomainPacer(crawl.DefaultRPS),
			Sitemap:    etree.NewDiscoverer(nil),
		},
		Aggregator: &crawl.Aggregator{Cleaner: goquery.NewCleaner()},
		Extractor: extract.NewExtractor(
			pslog.NewLoggingCompleter(completer, logger),
			extract.WithTemplate(template),
			extract.WithStrategy(strategy),
		),
		Jobs:      m.JobService,
		Artifacts: artifacts,
		Logger:    logger,
	}, nil
}

// buildFetcher picks the page fetcher: the ScraperAPI proxy when a key is
// configured, a local headless browser with --browser.
func (m *Main) buildFetcher(browser bool, stderr io.Writer) (profiler.Fetcher, error) {
	if browser {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, err
		}
		return fetcher, nil
	}

	apiKey := os.Getenv("SCRAPERAPI_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "SCRAPERAPI_KEY environment variable not set. Pass --browser to use a local browser instead.")
		return nil, profiler.Errorf(profiler.EINVALID, "SCRAPERAPI_KEY not set")
	}
	return scraperapi.NewFetcher(apiKey), nil
}

// buildCompleter picks the extraction model: OpenAI by default, Gemini
// with --llm=gemini.
func buildCompleter(ctx context.Context, llm string, stderr io.Writer) (profiler.Completer, error) {
	switch llm {
	case "", "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set.")
			return nil, profiler.Errorf(profiler.EINVALID, "OPENAI_API_KEY not set")
		}
		return popenai.NewCompleter(openai.NewClient(apiKey)), nil
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, profiler.Errorf(profiler.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client), nil
	default:
		return nil, profiler.Errorf(profiler.EINVALID, "unknown llm %q (want openai or gemini)", llm)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("PROFILER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "profiler.db"
	}
	dir := filepath.Join(home, ".profiler")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "profiler.db")
}
