package main

import (
	"context"
	"errors"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/sqlite"
)

// openDB opens the SQLite database at path, creating it if needed.
func openDB(path string) (*sqlite.DB, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	return db, nil
}

// documentWriters fans each document out to every writer.
type documentWriters []scam.DocumentWriter

func (ws documentWriters) CreateDocument(ctx context.Context, doc *scam.Document) error {
	var errs []error
	for _, w := range ws {
		if err := w.CreateDocument(ctx, doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
