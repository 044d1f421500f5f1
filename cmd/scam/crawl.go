package main

import (
	"fmt"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/fs"
	"github.com/fwojciec/scam/goquery"
	"github.com/fwojciec/scam/htmltomarkdown"
	scamslog "github.com/fwojciec/scam/slog"
	"github.com/fwojciec/scam/sqlite"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	links := scamslog.NewLoggingLinkSelector(goquery.NewSelector(), deps.Logger)
	crawler, err := c.newCrawler(deps, links)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scam.ErrorMessage(err))
		return err
	}

	seeds, err := c.expandSeeds(deps, c.Seeds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scam.ErrorMessage(err))
		return err
	}

	ext := ".html"
	if c.Markdown {
		crawler.Converter = htmltomarkdown.NewConverter()
		ext = ".md"
	}

	var writers documentWriters

	var writer *fs.Writer
	if c.Out != "" {
		writer = fs.NewWriter(c.Out, ext)
		writers = append(writers, writer)
	}

	if c.DB != "" {
		db, err := openDB(c.DB)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer db.Close()

		record := &scam.Crawl{Seeds: c.Seeds}
		if err := sqlite.NewCrawlService(db).CreateCrawl(deps.Ctx, record); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scam.ErrorMessage(err))
			return err
		}
		writers = append(writers, sqlite.NewDocumentService(db, record.ID))
		fmt.Fprintf(deps.Stderr, "Recording crawl %s in %s\n", record.ID, c.DB)
	}

	if len(writers) > 0 {
		crawler.Documents = scamslog.NewLoggingDocumentWriter(writers, deps.Logger)
	}

	docs, err := crawler.Crawl(deps.Ctx, seeds, c.Limit)
	if err != nil {
		if writer != nil {
			_ = writer.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%d\t%s\t%s\n", doc.ID, doc.ContentHash, doc.URL)
	}

	if writer != nil {
		if err := writer.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved %d documents to %s\n", len(docs), c.Out)
	}

	return nil
}
