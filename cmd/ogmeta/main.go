package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ogmeta"
	"github.com/fwojciec/ogmeta/crawl"
	"github.com/fwojciec/ogmeta/fs"
	"github.com/fwojciec/ogmeta/goquery"
	ogmetahttp "github.com/fwojciec/ogmeta/http"
	"github.com/fwojciec/ogmeta/rod"
	ogmetaslog "github.com/fwojciec/ogmeta/slog"
	"github.com/fwojciec/ogmeta/sqlite"
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

	// Input for "parse" when no file is given.
	Stdin io.Reader

	// SQLite database, opened only by commands that store or read snapshots.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ogmeta"),
		kong.Description("Extract Open Graph, Twitter card and site metadata from HTML"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ogmeta --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Parser = newParser(cli.Parser)
	if cli.Verbose {
		deps.Parser = ogmetaslog.NewLoggingParser(deps.Parser, deps.Logger)
	}

	if needsDB(cmd, cli) {
		if dir := filepath.Dir(m.DBPath); dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set OGMETA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Snapshots = sqlite.NewSnapshotService(m.DB)
	}

	switch cmd {
	case "fetch":
		headers, err := parseHeaders(cli.Fetch.Header)
		if err != nil {
			return err
		}
		fetcher, err := newFetcher(cli.Fetch.Render, cli.Fetch.Timeout, headers, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()
		deps.Fetcher = decorate(cli, fetcher, deps.Logger)

	case "crawl":
		headers, err := parseHeaders(cli.Crawl.Header)
		if err != nil {
			return err
		}
		fetcher, err := newFetcher(false, cli.Crawl.Timeout, headers, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		sitemaps := ogmeta.SitemapService(ogmetahttp.NewSitemapService(nil))
		if cli.Verbose {
			sitemaps = ogmetaslog.NewLoggingSitemapService(sitemaps, deps.Logger)
		}

		deps.Collector = &crawl.Collector{
			Sitemaps:    sitemaps,
			Fetcher:     decorate(cli, fetcher, deps.Logger),
			Parser:      deps.Parser,
			RateLimiter: crawl.NewDomainLimiter(cli.Crawl.RPS),
			Concurrency: cli.Crawl.Concurrency,
			Logger:      deps.Logger,
		}

		if cli.Crawl.Out != "" {
			deps.Export = fs.NewFileStore(filepath.Dir(cli.Crawl.Out), filepath.Base(cli.Crawl.Out))
		}

		if cli.Crawl.RenderFallback {
			renderer, err := newFetcher(true, cli.Crawl.Timeout, nil, stderr)
			if err != nil {
				return err
			}
			defer renderer.Close()
			deps.Collector.Renderer = decorate(cli, renderer, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

func decorate(cli *CLI, f ogmeta.Fetcher, logger *slog.Logger) ogmeta.Fetcher {
	if cli.Verbose {
		return ogmetaslog.NewLoggingFetcher(f, logger)
	}
	return f
}

// needsDB reports whether cmd reads or writes snapshots.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "history", "show", "delete":
		return true
	case "fetch":
		return cli.Fetch.Save
	case "crawl":
		return cli.Crawl.Save
	}
	return false
}

func newParser(name string) ogmeta.Parser {
	if name == "dom" {
		return goquery.NewParser()
	}
	return ogmeta.MetaTagParser{}
}

// newFetcher returns the plain HTTP fetcher, or headless Chrome when render is set.
func newFetcher(render bool, timeout time.Duration, headers map[string]string, stderr io.Writer) (ogmeta.Fetcher, error) {
	if render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return ogmetahttp.NewFetcher(
		ogmetahttp.WithTimeout(timeout),
		ogmetahttp.WithHeaders(headers),
	), nil
}

// parseHeaders parses "Name: value" pairs given with -H.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, ogmeta.Errorf(ogmeta.EINVALID, "invalid header %q, expected \"Name: value\"", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

func defaultDBPath() string {
	if path := os.Getenv("OGMETA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ogmeta.db"
	}
	return filepath.Join(home, ".ogmeta", "ogmeta.db")
}
