package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ogmeta"
	"github.com/fwojciec/ogmeta/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Parser    ogmeta.Parser
	Fetcher   ogmeta.Fetcher
	Collector *crawl.Collector
	Snapshots ogmeta.SnapshotService
	Export    ogmeta.PageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetches and parses to stderr"`
	Parser  string `enum:"scan,dom" default:"scan" help:"Meta tag parser: scan (tolerant text scan) or dom (full HTML parse)"`

	Parse   ParseCmd   `cmd:"" help:"Extract metadata from a local HTML file or stdin"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch a page and extract its metadata"`
	Crawl   CrawlCmd   `cmd:"" help:"Extract metadata from every page in a site's sitemap"`
	History HistoryCmd `cmd:"" help:"List saved snapshots"`
	Show    ShowCmd    `cmd:"" help:"Show a saved snapshot"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved snapshot"`
}

// LookupFlags select individual values instead of printing every attribute.
type LookupFlags struct {
	OG      []string `name:"og" placeholder:"KEY" help:"Print an Open Graph value, e.g. title or image:width (repeatable)"`
	Site    []string `placeholder:"KEY" help:"Print a site value: description, author, keywords, charset (repeatable)"`
	Twitter []string `placeholder:"KEY" help:"Print a Twitter card value, e.g. card or title (repeatable)"`
	Raw     []string `placeholder:"KEY" help:"Print the value stored under an exact attribute name (repeatable)"`
	JSON    bool     `name:"json" help:"Print as JSON"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" optional:"" help:"HTML file to read (default: stdin)"`

	LookupFlags `embed:""`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL     string        `arg:"" help:"Page URL"`
	Render  bool          `help:"Render the page in headless Chrome before extracting"`
	Header  []string      `short:"H" sep:"none" placeholder:"NAME: VALUE" help:"Extra request header (repeatable)"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout"`
	Save    bool          `help:"Store the result as a snapshot"`

	LookupFlags `embed:""`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL            string        `arg:"" help:"Site URL; pages are discovered from its sitemaps"`
	Concurrency    int           `short:"c" default:"5" help:"Concurrent fetch limit"`
	RPS            float64       `name:"rps" default:"2" help:"Requests per second per domain (0 for unlimited)"`
	Filter         []string      `short:"F" sep:"none" name:"filter" help:"Only collect URLs matching regex (repeatable)"`
	Exclude        []string      `short:"X" sep:"none" name:"exclude" help:"Skip URLs matching regex (repeatable)"`
	Header         []string      `short:"H" sep:"none" placeholder:"NAME: VALUE" help:"Extra request header (repeatable)"`
	Timeout        time.Duration `default:"10s" help:"Per-page fetch timeout"`
	RenderFallback bool          `help:"Render pages without Open Graph tags in headless Chrome"`
	Save           bool          `help:"Store each page as a snapshot"`
	Out            string        `short:"o" type:"path" placeholder:"DIR" help:"Also write one JSON file per page under DIR"`
	JSON           bool          `name:"json" help:"Print one JSON object per page"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `arg:"" optional:"" help:"Only list snapshots of this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum snapshots to list (0 for all)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Snapshot ID"`

	LookupFlags `embed:""`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Snapshot ID"`
	Force bool   `help:"Confirm deletion"`
}
