package mock

import (
	"context"

	"github.com/fwojciec/scam"
)

var _ scam.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of scam.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *scam.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *scam.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
