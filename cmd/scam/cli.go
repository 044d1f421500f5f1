package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/scam"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fetcher scam.Fetcher

	Sitemaps scam.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	UserAgent string        `name:"user-agent" env:"SCAM_USER_AGENT" help:"User-Agent header sent with each request (default: scam agent)"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`
	Browser   bool          `help:"Render pages in headless Chrome instead of plain HTTP"`

	Crawl CrawlCmd `cmd:"" help:"Crawl from seed URLs and print or save documents"`
	Index IndexCmd `cmd:"" help:"Crawl from seed URLs and print term frequencies"`
}

// FrontierFlags configure the crawl frontier and driver.
type FrontierFlags struct {
	Limit       int  `short:"n" default:"100" help:"Maximum number of documents (0 for no limit)"`
	Depth       int  `short:"d" default:"3" help:"Number of priority bands"`
	Width       int  `short:"w" help:"Number of back queues (default: concurrency)"`
	Concurrency int  `short:"c" default:"4" help:"Concurrent fetch limit"`
	FIFO        bool `name:"fifo" help:"Use a plain FIFO frontier instead of the priority frontier"`
	Bloom       bool `help:"Deduplicate with a Bloom filter (approximate, bounded memory)"`

	Include []string `help:"Only follow links matching this regex (repeatable)"`
	Exclude []string `help:"Never follow links matching this regex (repeatable)"`
	Sitemap bool     `help:"Add the URLs listed in each seed's sitemap to the seeds"`
	Extract string   `enum:"none,trafilatura,readability" default:"none" help:"Strip boilerplate before saving (none, trafilatura, readability)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds    []string `arg:"" help:"Seed URLs"`
	Markdown bool     `short:"m" help:"Convert pages to Markdown"`
	Out      string   `short:"o" type:"path" help:"Directory to save documents to"`
	DB       string   `name:"db" type:"path" help:"SQLite database to record the crawl in"`

	FrontierFlags `embed:""`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Seeds []string `arg:"" optional:"" help:"Seed URLs (default: the latest crawl in --db)"`
	Top   int      `default:"20" help:"Number of terms to print (0 for all)"`
	DB    string   `name:"db" type:"path" help:"SQLite database to read documents from when no seeds are given"`

	FrontierFlags `embed:""`
}
