package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scam"
	scamhttp "github.com/fwojciec/scam/http"
	scamrod "github.com/fwojciec/scam/rod"
	scamslog "github.com/fwojciec/scam/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher, if set, replaces the HTTP fetcher. Used for end-to-end testing.
	Fetcher scam.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scam"),
		kong.Description("Crawl sites through a prioritized URL frontier"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scam --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher, err = newFetcher(cli)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", scam.ErrorMessage(err))
			return err
		}
		defer fetcher.Close()
	}
	deps.Fetcher = scamslog.NewLoggingFetcher(fetcher, deps.Logger)
	deps.Sitemaps = scamhttp.NewSitemapService(deps.Fetcher)

	return kongCtx.Run(deps)
}

// newFetcher returns the fetcher selected by the global flags.
func newFetcher(cli *CLI) (scam.Fetcher, error) {
	if cli.Browser {
		opts := []scamrod.Option{scamrod.WithFetchTimeout(cli.Timeout)}
		if cli.UserAgent != "" {
			opts = append(opts, scamrod.WithUserAgent(cli.UserAgent))
		}
		return scamrod.NewFetcher(opts...)
	}

	opts := []scamhttp.Option{scamhttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, scamhttp.WithUserAgent(cli.UserAgent))
	}
	return scamhttp.NewFetcher(opts...), nil
}
