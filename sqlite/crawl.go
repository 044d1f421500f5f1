package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/scam"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ scam.CrawlService = (*CrawlService)(nil)

// CrawlService implements scam.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl creates a new crawl record.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *scam.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	seeds, err := json.Marshal(crawl.Seeds)
	if err != nil {
		return err
	}

	crawl.ID = uuid.New().String()
	crawl.StartedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, seeds, started_at)
		VALUES (?, ?, ?)
	`, crawl.ID, string(seeds), crawl.StartedAt.Format(time.RFC3339))

	return err
}

// FindCrawlByID retrieves a crawl by ID.
func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*scam.Crawl, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seeds, started_at
		FROM crawls
		WHERE id = ?
	`, id)
	return scanCrawl(row)
}

// LatestCrawl retrieves the most recently started crawl.
func (s *CrawlService) LatestCrawl(ctx context.Context) (*scam.Crawl, error) {
	// rowid breaks ties between crawls started in the same second
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seeds, started_at
		FROM crawls
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`)
	return scanCrawl(row)
}

func scanCrawl(row *sql.Row) (*scam.Crawl, error) {
	var crawl scam.Crawl
	var seeds, startedAt string

	err := row.Scan(&crawl.ID, &seeds, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scam.Errorf(scam.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(seeds), &crawl.Seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seeds: %w", err)
	}
	crawl.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}

	return &crawl, nil
}
