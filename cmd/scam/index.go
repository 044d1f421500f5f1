package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/goquery"
	"github.com/fwojciec/scam/htmltomarkdown"
	"github.com/fwojciec/scam/snowball"
	"github.com/fwojciec/scam/sqlite"
)

// termCount is a term and the number of times it occurred.
type termCount struct {
	Term  string
	Count int
}

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	docs, err := c.documents(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scam.ErrorMessage(err))
		return err
	}

	terms := countTerms(snowball.NewTokenizer(), docs)
	if c.Top > 0 && len(terms) > c.Top {
		terms = terms[:c.Top]
	}

	for _, tc := range terms {
		fmt.Fprintf(deps.Stdout, "%d\t%s\n", tc.Count, tc.Term)
	}
	fmt.Fprintf(deps.Stderr, "Indexed %d documents\n", len(docs))
	return nil
}

// documents crawls the seeds, or loads the latest crawl from --db when
// no seeds are given. Either way the text, not the markup, is returned.
func (c *IndexCmd) documents(deps *Dependencies) ([]*scam.Document, error) {
	converter := htmltomarkdown.NewConverter()

	if len(c.Seeds) == 0 {
		if c.DB == "" {
			return nil, scam.Errorf(scam.EINVALID, "seeds or --db required")
		}
		return loadLatest(deps, c.DB, converter)
	}

	crawler, err := c.newCrawler(deps, goquery.NewSelector())
	if err != nil {
		return nil, err
	}
	crawler.Converter = converter

	seeds, err := c.expandSeeds(deps, c.Seeds)
	if err != nil {
		return nil, err
	}
	return crawler.Crawl(deps.Ctx, seeds, c.Limit)
}

// loadLatest returns the documents of the most recent crawl in the
// database at path. Stored HTML is converted; documents that convert to
// nothing are skipped.
func loadLatest(deps *Dependencies, path string, converter scam.Converter) ([]*scam.Document, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	record, err := sqlite.NewCrawlService(db).LatestCrawl(deps.Ctx)
	if err != nil {
		return nil, err
	}

	stored, err := sqlite.NewDocumentService(db, record.ID).FindDocuments(deps.Ctx, scam.DocumentFilter{CrawlID: &record.ID})
	if err != nil {
		return nil, err
	}
	deps.Logger.Info("loaded crawl", "crawl", record.ID, "documents", len(stored))

	docs := make([]*scam.Document, 0, len(stored))
	for _, doc := range stored {
		content, err := converter.Convert(doc.Content)
		if err != nil {
			deps.Logger.Debug("skip document", "id", doc.ID, "url", doc.URL, "err", err)
			continue
		}
		doc.Content = content
		docs = append(docs, doc)
	}
	return docs, nil
}

// countTerms tokenizes every document and returns term counts, most
// frequent first and alphabetical within equal counts.
func countTerms(tok scam.Tokenizer, docs []*scam.Document) []termCount {
	freq := make(map[string]int)
	for _, doc := range docs {
		for _, term := range tok.Tokenize(doc.Content) {
			freq[term]++
		}
	}

	terms := make([]termCount, 0, len(freq))
	for term, count := range freq {
		terms = append(terms, termCount{Term: term, Count: count})
	}
	slices.SortFunc(terms, func(a, b termCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	return terms
}
