package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/scam"
)

// Compile-time interface verification.
var _ scam.DocumentService = (*DocumentService)(nil)

// DocumentService implements scam.DocumentService using SQLite.
// Documents it creates belong to a single crawl.
type DocumentService struct {
	db      *DB
	crawlID string
}

// NewDocumentService creates a DocumentService that files new documents
// under crawlID.
func NewDocumentService(db *DB, crawlID string) *DocumentService {
	return &DocumentService{db: db, crawlID: crawlID}
}

// CreateDocument stores a document under the service's crawl.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *scam.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if s.crawlID == "" {
		return scam.Errorf(scam.EINVALID, "crawl ID required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (crawl_id, id, url, title, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.crawlID, doc.ID, doc.URL, doc.Title, doc.Content, doc.ContentHash,
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindDocuments retrieves documents matching the filter in ID order.
func (s *DocumentService) FindDocuments(ctx context.Context, filter scam.DocumentFilter) ([]*scam.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, content, content_hash FROM documents WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*scam.Document
	for rows.Next() {
		var doc scam.Document
		if err := rows.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Content, &doc.ContentHash); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
