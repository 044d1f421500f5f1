package scam

import "context"

// Document represents a fetched page produced by the crawl driver.
// The frontier never constructs or inspects documents.
type Document struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Content     string `json:"content"`
	ContentHash string `json:"contentHash"`

	// ID is assigned by the driver in emission order.
	// It is not guaranteed unique across crawls.
	ID int `json:"id"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}
