// Package fs provides file-based storage for crawled documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/scam"
)

// URLToPath converts a document URL to a relative file path rooted at its host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
// The query string, if any, becomes part of the file name so that pages
// differing only by query do not overwrite each other.
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", scam.Errorf(scam.EINVALID, "URL %q has no host", rawURL)
	}

	host := strings.ReplaceAll(strings.ToLower(u.Host), ":", "_")

	// Clean against a rooted path so ".." cannot escape the host directory
	p := path.Clean("/" + u.Path)
	if strings.HasSuffix(u.Path, "/") || p == "/" {
		p = path.Join(p, "index")
	}
	p = strings.TrimPrefix(p, "/")

	if u.RawQuery != "" {
		p += "_" + queryReplacer.Replace(u.RawQuery)
	}

	return path.Join(host, p) + ext, nil
}

var queryReplacer = strings.NewReplacer("/", "_", "&", "_", "=", "-", "%", "")

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *scam.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("url: ")
	b.WriteString(doc.URL)
	if doc.Title != "" {
		b.WriteString("\ntitle: ")
		b.WriteString(doc.Title)
	}
	b.WriteString("\nid: ")
	b.WriteString(strconv.Itoa(doc.ID))
	b.WriteString("\nhash: ")
	b.WriteString(doc.ContentHash)
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements scam.DocumentWriter at compile time.
var _ scam.DocumentWriter = (*Writer)(nil)

// Writer writes documents as files under a directory with atomic update
// semantics. Files are written to dir.tmp and moved to dir on Commit.
type Writer struct {
	dir string
	ext string
}

// NewWriter creates a new Writer targeting dir. ext is the file extension
// including the dot, such as ".md".
func NewWriter(dir, ext string) *Writer {
	return &Writer{dir: filepath.Clean(dir), ext: ext}
}

func (w *Writer) tempDir() string {
	return w.dir + ".tmp"
}

// CreateDocument writes a document to the staging directory.
// Safe for concurrent use with distinct documents.
func (w *Writer) CreateDocument(ctx context.Context, doc *scam.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.URL, w.ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.tempDir(), filepath.FromSlash(relPath))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}

// Commit replaces dir with everything written so far.
func (w *Writer) Commit() error {
	if _, err := os.Stat(w.tempDir()); os.IsNotExist(err) {
		// Nothing was written; leave an empty output directory
		return os.MkdirAll(w.dir, 0755)
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(w.dir); err != nil {
		return err
	}

	return os.Rename(w.tempDir(), w.dir)
}

// Abort discards everything written since the last Commit.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}
